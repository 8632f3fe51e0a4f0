// Package objectpath renders object-storage keys from a configurable
// template. Operators choose the storage layout (flat, hash-addressed,
// per-owner hierarchy) via the pattern; authorization logic stays unaware
// of it.
package objectpath

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"rawstore/internal/model"
)

// MissingVariableError reports a pattern placeholder with no value in the
// parameter set. It is a client error: the configured pattern and the
// submitted file metadata do not line up.
type MissingVariableError struct {
	Variable string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("path pattern references variable not found in file info: %s", e.Variable)
}

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Format substitutes every {name} placeholder in pattern with its value from
// params. A placeholder absent from params fails the whole rendering with a
// MissingVariableError; values are never silently dropped.
func Format(pattern string, params map[string]string) (string, error) {
	var b strings.Builder
	last := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(pattern, -1) {
		name := pattern[m[2]:m[3]]
		val, ok := params[name]
		if !ok {
			return "", &MissingVariableError{Variable: name}
		}
		b.WriteString(pattern[last:m[0]])
		b.WriteString(val)
		last = m[1]
	}
	b.WriteString(pattern[last:])
	return b.String(), nil
}

// BuildParams merges the declared file fields with the attributes computed
// from the request: owner, dataset, the relative path and its derived parts.
// When the base64 content digest decodes, md5_hex carries its lowercase hex
// rendering; a digest that does not decode simply omits the field.
func BuildParams(file model.FileDescriptor, owner, dataset, relpath string) map[string]string {
	dir := path.Dir(relpath)
	if dir == "." {
		dir = ""
	}
	params := map[string]string{
		"owner":     owner,
		"dataset":   dataset,
		"path":      relpath,
		"basename":  path.Base(relpath),
		"dirname":   dir,
		"extension": path.Ext(relpath),
		"length":    strconv.FormatInt(file.Length, 10),
	}
	if file.Name != "" {
		params["name"] = file.Name
	}
	if file.Type != "" {
		params["type"] = file.Type
	}
	if file.MD5 != "" {
		params["md5"] = file.MD5
		if sum, err := base64.StdEncoding.DecodeString(file.MD5); err == nil {
			params["md5_hex"] = hex.EncodeToString(sum)
		}
	}
	return params
}
