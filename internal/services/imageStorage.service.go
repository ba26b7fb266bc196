package services

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	domainerrors "collectgames/internal/errors"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// PublicImagePrefix is the URL prefix under which stored images are served.
const PublicImagePrefix = "/images/"

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type ImageUpload struct {
	Filename string
	Data     []byte
}

type StoredImage struct {
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

type ImageStore interface {
	// Save persists the upload and returns its public path.
	Save(ctx context.Context, upload ImageUpload) (string, error)
	// Delete removes a stored image. Missing files and foreign paths are ignored.
	Delete(ctx context.Context, publicPath string) error
	List(ctx context.Context) ([]StoredImage, error)
	// LocalPath resolves a public path to the file on disk.
	LocalPath(publicPath string) (string, bool)
}

type ImageStorageService struct {
	dir string
	log logger.Logger
}

func NewImageStorageService(dir string) *ImageStorageService {
	return &ImageStorageService{
		dir: dir,
		log: logger.New("imageStorageService"),
	}
}

func (s *ImageStorageService) Save(ctx context.Context, upload ImageUpload) (string, error) {
	log := s.log.TraceFromContext(ctx).Function("Save")

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if len(upload.Data) == 0 {
		return "", domainerrors.Validation("image file is empty")
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedImageExtensions[ext] {
		return "", domainerrors.Validationf(
			"unsupported image type %q: allowed types are .jpg, .jpeg, .png, .webp",
			ext,
		)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", log.Err(
			"failed to create image directory",
			domainerrors.Dependency("image storage unavailable", err),
			"dir", s.dir,
		)
	}

	name := uuid.NewString() + ext
	file, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", log.Err(
			"failed to create image file",
			domainerrors.Dependency("failed to store image", err),
			"name", name,
		)
	}

	if _, err := file.Write(upload.Data); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", log.Err(
			"failed to write image file",
			domainerrors.Dependency("failed to store image", err),
			"name", name,
		)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", log.Err(
			"failed to close image file",
			domainerrors.Dependency("failed to store image", err),
			"name", name,
		)
	}

	log.Info("Stored image", "path", PublicImagePrefix+name, "size", len(upload.Data))
	return PublicImagePrefix + name, nil
}

func (s *ImageStorageService) Delete(ctx context.Context, publicPath string) error {
	log := s.log.TraceFromContext(ctx).Function("Delete")

	localPath, ok := s.LocalPath(publicPath)
	if !ok {
		log.Debug("Ignoring non-local image path", "path", publicPath)
		return nil
	}

	if err := os.Remove(localPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return log.Err(
			"failed to delete image",
			domainerrors.Dependency("failed to delete image", err),
			"path", publicPath,
		)
	}

	log.Info("Deleted image", "path", publicPath)
	return nil
}

func (s *ImageStorageService) List(ctx context.Context) ([]StoredImage, error) {
	log := s.log.TraceFromContext(ctx).Function("List")

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []StoredImage{}, nil
		}
		return nil, log.Err(
			"failed to read image directory",
			domainerrors.Dependency("failed to list images", err),
			"dir", s.dir,
		)
	}

	images := make([]StoredImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Warn("failed to stat image", "name", entry.Name(), "error", err)
			continue
		}

		images = append(images, StoredImage{
			Path:       PublicImagePrefix + entry.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}

	return images, nil
}

func (s *ImageStorageService) LocalPath(publicPath string) (string, bool) {
	name, found := strings.CutPrefix(publicPath, PublicImagePrefix)
	if !found || name == "" || name == "." || name == ".." {
		return "", false
	}

	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", false
	}

	return filepath.Join(s.dir, name), true
}

func (s *ImageStorageService) Dir() string {
	return s.dir
}
