// Package prompts serves the LLM prompt templates. Templates live in
// JSON files embedded at compile time, keyed by prompt name, so prompt
// wording can change without touching matcher code.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	loaded   map[string]map[string]string
	loadErr  error
)

// load parses every embedded file once. The set is fixed at compile
// time, so a parse failure is a packaging bug and sticks.
func load() {
	loaded = make(map[string]map[string]string)
	entries, err := fs.ReadDir(promptFiles, ".")
	if err != nil {
		loadErr = fmt.Errorf("failed to read embedded prompts: %w", err)
		return
	}
	for _, e := range entries {
		data, err := promptFiles.ReadFile(e.Name())
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", e.Name(), err)
			return
		}
		var m map[string]string
		if err := json.Unmarshal(data, &m); err != nil {
			loadErr = fmt.Errorf("failed to parse prompt file %s: %w", e.Name(), err)
			return
		}
		loaded[e.Name()] = m
	}
}

// Get retrieves a prompt template by file and key. The filename carries
// no path ("match.json").
func Get(filename, key string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}
	file, ok := loaded[filename]
	if !ok {
		return "", fmt.Errorf("prompt file %q not embedded", filename)
	}
	prompt, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt, panicking when it is missing. For prompts
// the binary cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a value are left in place, which makes a missing
// substitution visible in the rendered prompt.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// Keys returns the prompt names available in a file.
func Keys(filename string) ([]string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	file, ok := loaded[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %q not embedded", filename)
	}
	keys := make([]string, 0, len(file))
	for key := range file {
		keys = append(keys, key)
	}
	return keys, nil
}
