package preview

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// EnvApprovalSecret names the environment variable holding the approval
// signing secret. Without it a random per-process secret is used, which
// scopes approvals to the process that showed the preview.
const EnvApprovalSecret = "AUTOFILL_APPROVAL_SECRET"

// DefaultApprovalTTL bounds how long an approval stays usable. A fill
// follows its preview within seconds; anything older is stale.
const DefaultApprovalTTL = 5 * time.Minute

// ApprovalConfig controls approval minting and verification.
type ApprovalConfig struct {
	Secret []byte
	TTL    time.Duration
}

// ApprovalConfigFromEnv reads the signing secret from the environment,
// falling back to the per-process secret.
func ApprovalConfigFromEnv() ApprovalConfig {
	cfg := ApprovalConfig{TTL: DefaultApprovalTTL}
	if s := os.Getenv(EnvApprovalSecret); s != "" {
		cfg.Secret = []byte(s)
	}
	return cfg
}

func (c ApprovalConfig) secret() []byte {
	if len(c.Secret) > 0 {
		return c.Secret
	}
	return processSecret()
}

func (c ApprovalConfig) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultApprovalTTL
}

var (
	processSecretOnce sync.Once
	processSecretKey  []byte
)

func processSecret() []byte {
	processSecretOnce.Do(func() {
		processSecretKey = make([]byte, 32)
		if _, err := rand.Read(processSecretKey); err != nil {
			panic("generating approval secret: " + err.Error())
		}
	})
	return processSecretKey
}

// Approval is proof that a specific preview was confirmed. Its only
// field is unexported, so the sole way to obtain a usable Approval is
// Preview.Approve; fill strategies verify it before writing anything.
type Approval struct {
	token string
}

type approvalClaims struct {
	Fingerprint string `json:"fpr"`
	jwt.RegisteredClaims
}

// Approve mints an approval bound to this preview's run and content.
func (p *Preview) Approve(cfg ApprovalConfig) (Approval, error) {
	now := time.Now()
	claims := &approvalClaims{
		Fingerprint: p.Fingerprint(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   p.RunID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.ttl())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.secret())
	if err != nil {
		return Approval{}, fmt.Errorf("failed to sign approval: %w", err)
	}
	return Approval{token: signed}, nil
}

// JTI returns the token's unique ID for the audit trail, or "" when the
// approval does not verify against its signing config.
func (a Approval) JTI(cfg ApprovalConfig) string {
	claims := &approvalClaims{}
	_, err := jwt.ParseWithClaims(a.token, claims, func(token *jwt.Token) (interface{}, error) {
		return cfg.secret(), nil
	})
	if err != nil {
		return ""
	}
	return claims.ID
}

// Verify checks that the approval was minted for exactly this preview:
// valid signature, unexpired, same run, same fingerprint.
func (a Approval) Verify(cfg ApprovalConfig, p *Preview) error {
	if a.token == "" {
		return errors.New("fill is not approved")
	}

	claims := &approvalClaims{}
	token, err := jwt.ParseWithClaims(a.token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("approval expired: %w", err)
		}
		return fmt.Errorf("approval rejected: %w", err)
	}
	if !token.Valid {
		return errors.New("approval is not valid")
	}

	if claims.Subject != p.RunID.String() {
		return errors.New("approval belongs to a different run")
	}
	if claims.Fingerprint != p.Fingerprint() {
		return errors.New("preview changed after approval")
	}
	return nil
}
