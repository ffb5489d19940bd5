package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	errs "github.com/amirhossein-jamali/schema-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/schema-ledger/internal/domain/port/source"
)

const filesystemScheme = "filesystem:"

// FSProvider lists migration scripts below a root directory of an fs.FS
type FSProvider struct {
	fsys     fs.FS
	root     string
	location string
}

var _ source.ResourceProvider = (*FSProvider)(nil)

// NewDirProvider creates a provider for a directory on the local disk.
// A leading "filesystem:" scheme is accepted and stripped.
func NewDirProvider(dir string) *FSProvider {
	dir = strings.TrimPrefix(dir, filesystemScheme)
	return NewFSProvider(os.DirFS(dir), ".", dir)
}

// NewFSProvider creates a provider over fsys rooted at root; location is used in reported paths
func NewFSProvider(fsys fs.FS, root, location string) *FSProvider {
	if root == "" {
		root = "."
	}
	if location == "" {
		location = root
	}
	return &FSProvider{fsys: fsys, root: path.Clean(root), location: location}
}

// Location returns the scanned root as configured
func (p *FSProvider) Location() string {
	return p.location
}

// ListResources walks the root recursively and returns matching files sorted by path
func (p *FSProvider) ListResources(ctx context.Context, prefix string, suffixes []string) ([]source.Resource, error) {
	var resources []source.Resource

	err := fs.WalkDir(p.fsys, p.root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		filename := d.Name()
		if !strings.HasPrefix(filename, prefix) || !hasAnySuffix(filename, suffixes) {
			return nil
		}

		content, err := fs.ReadFile(p.fsys, name)
		if err != nil {
			return err
		}

		resources = append(resources, source.Resource{
			Filename: filename,
			Location: path.Join(p.location, p.relative(name)),
			Content:  content,
		})
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %s: %s", errs.ErrUnreadableLocation, p.location, err.Error())
	}

	sort.Slice(resources, func(i, j int) bool {
		return resources[i].Location < resources[j].Location
	})
	return resources, nil
}

func (p *FSProvider) relative(name string) string {
	if p.root == "." {
		return name
	}
	return strings.TrimPrefix(strings.TrimPrefix(name, p.root), "/")
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
