// Package input resolves CLI-level options into a single outgoing post.
//
// Message text comes from exactly one of three sources: an inline argument,
// a file, or standard input. The sources are modeled as a tagged variant
// selected once, rather than conditional branching repeated at call sites.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxImageBytes is the sendPhoto upload limit enforced before any network call.
const maxImageBytes = 10 << 20 // 10 MiB

// supportedImageExts lists the photo formats the Bot API accepts.
var supportedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Options carries the CLI-level inputs that determine a post's content.
type Options struct {
	Inline    string
	InlineSet bool
	FromFile  string
	Image     string

	// Stdin and Prompt back the interactive source; tests substitute both.
	Stdin  io.Reader
	Prompt io.Writer
}

// Post is the resolved content of a single send: text, an image path, or both.
type Post struct {
	Text  string
	Image string
}

// Source yields the message text for a post.
type Source interface {
	Load() (string, error)
}

// InlineSource uses the positional argument verbatim.
type InlineSource struct {
	Text string
}

// Load implements Source.
func (s InlineSource) Load() (string, error) { return s.Text, nil }

// FileSource reads the entire file as message text.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return "", &ReadError{Path: s.Path, Err: err}
	}
	return strings.TrimSpace(string(data)), nil
}

// StdinSource reads standard input until end-of-stream.
type StdinSource struct {
	R      io.Reader
	Prompt io.Writer
}

// Load implements Source.
func (s StdinSource) Load() (string, error) {
	if s.Prompt != nil {
		fmt.Fprintln(s.Prompt, "Enter message text (Ctrl+D to send):")
	}
	data, err := io.ReadAll(s.R)
	if err != nil {
		return "", &ReadError{Path: "stdin", Err: err}
	}
	return strings.TrimSpace(string(data)), nil
}

// Resolve applies the source-selection rules and returns the post content.
// Every validation here runs before any network activity.
func Resolve(opts Options) (Post, error) {
	src, err := selectSource(opts)
	if err != nil {
		return Post{}, err
	}

	var text string
	if src != nil {
		text, err = src.Load()
		if err != nil {
			return Post{}, err
		}
	}

	if opts.Image != "" {
		if err := checkImage(opts.Image); err != nil {
			return Post{}, err
		}
	}

	if text == "" && opts.Image == "" {
		return Post{}, ErrNoContent
	}

	return Post{Text: text, Image: opts.Image}, nil
}

// selectSource picks the single text source. A nil source with no error
// means a captionless photo.
func selectSource(opts Options) (Source, error) {
	switch {
	case opts.FromFile != "" && opts.InlineSet:
		return nil, ErrSourceConflict
	case opts.FromFile != "":
		return FileSource{Path: opts.FromFile}, nil
	case opts.InlineSet:
		return InlineSource{Text: opts.Inline}, nil
	case opts.Image == "":
		return StdinSource{R: opts.Stdin, Prompt: opts.Prompt}, nil
	default:
		return nil, nil
	}
}

// checkImage verifies the image is readable and within the format and size
// limits of the sendPhoto method.
func checkImage(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return &ReadError{Path: path, Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return &ReadError{Path: path, Err: err}
	}
	_ = f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedImageExts[ext] {
		return fmt.Errorf("%w: %q (supported: jpg, jpeg, png, gif, webp)", ErrUnsupportedImage, ext)
	}
	if fi.Size() > maxImageBytes {
		return fmt.Errorf("%w: %.1f MB (max 10 MB)", ErrImageTooLarge, float64(fi.Size())/(1<<20))
	}
	return nil
}
