package browser

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/application-autofill/internal/preview"
	"github.com/jonathan/application-autofill/internal/record"
	"github.com/jonathan/application-autofill/internal/render"
	"github.com/jonathan/application-autofill/internal/types"
)

func TestInject_RequiresApproval(t *testing.T) {
	rec := &record.PersonalRecord{}
	p := preview.Build(uuid.New(), "example.com", nil, nil, render.NewRenderer(rec))

	s := &Session{}
	errs := s.Inject(preview.ApprovalConfig{}, p, preview.Approval{})

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "not approved")
}

func TestInjectError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &InjectError{Locator: "css:#x", Message: "script evaluation failed", Cause: cause}

	assert.Contains(t, err.Error(), "css:#x")
	assert.ErrorIs(t, err, cause)
}

func TestInjectError_NoCause(t *testing.T) {
	err := &InjectError{Locator: types.ScreenLocator(1, 2, 3, 4).String(), Message: "locator is not DOM-addressable"}

	assert.Contains(t, err.Error(), "screen:1,2,3,4")
	assert.Nil(t, errors.Unwrap(err))
}
