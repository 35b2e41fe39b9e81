package handlers

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"sacco-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errFileType rejects uploads whose extension is outside the allowed set
var errFileType = errors.New("file type not allowed")

// Extensions served back from /media. Anything a browser would render as active
// content (html, svg, js) is refused.
var (
	imageExts    = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	documentExts = map[string]bool{
		".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
		".csv": true, ".txt": true, ".zip": true, ".jpg": true, ".jpeg": true, ".png": true,
	}
)

// upload is a file stored under the media root
type upload struct {
	Path string // relative to the media root, forward slashes
	Size int64
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// saveUpload stores the multipart file in field under mediaRoot/dir with a random name.
// It returns nil when the request carries no such file.
func saveUpload(c *fiber.Ctx, mediaRoot, field, dir string, allowed map[string]bool) (*upload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowed[ext] {
		return nil, errFileType
	}

	if err := os.MkdirAll(filepath.Join(mediaRoot, dir), 0o755); err != nil {
		return nil, err
	}
	name := uuid.NewString() + ext
	if err := c.SaveFile(fh, filepath.Join(mediaRoot, dir, name)); err != nil {
		return nil, err
	}
	return &upload{Path: path.Join(dir, name), Size: fh.Size}, nil
}

// badInput reports a body or form that could not be read
func badInput(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, errFileType) {
		return response.BadRequest(c, "File type not allowed")
	}
	return response.BadRequest(c, fallback)
}

// formString returns the form value for key, nil when absent
func formString(c *fiber.Ctx, key string) *string {
	v := c.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

// formBool returns the parsed form value for key, nil when absent or malformed
func formBool(c *fiber.Ctx, key string) *bool {
	b, err := strconv.ParseBool(c.FormValue(key))
	if err != nil {
		return nil
	}
	return &b
}
