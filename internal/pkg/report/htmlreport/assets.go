package htmlreport

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/png"
	"path"
	"regexp"

	"github.com/spf13/afero"
)

// sanitizeRe matches everything assetName must replace with '_' (spec.md
// §4.8: "non-[A-Za-z0-9._-]").
var sanitizeRe = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// assetName builds a `<sanitized-key>_<hash(key)>.<ext>` file name. The
// FNV-1a 64-bit hash (SPEC_FULL.md §9 Open Question 3) guarantees
// uniqueness after sanitization collisions (e.g. "a/b" and "a:b" both
// sanitize to "a_b").
func assetName(key, suffix, ext string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	sanitized := sanitizeRe.ReplaceAllString(key, "_")
	if suffix != "" {
		sanitized += "_" + suffix
	}
	return fmt.Sprintf("%s_%x.%s", sanitized, h.Sum64(), ext)
}

// writePNGAsset encodes img as PNG into dir/name on fs, returning the name
// so the caller can link to it from a detail page.
func writePNGAsset(fs afero.Fs, dir, name string, img image.Image) (string, error) {
	if img == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode asset %q: %w", name, err)
	}
	full := path.Join(dir, name)
	if err := afero.WriteFile(fs, full, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write asset %q: %w", full, err)
	}
	return name, nil
}
