package libs

import (
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"
)

// CloudinaryResolver maps catalog image references such as
// "images/full_nighty.jpg" to Cloudinary delivery URLs. References that are
// already absolute URLs pass through unchanged.
type CloudinaryResolver struct {
	cld *cloudinary.Cloudinary
	log *zap.Logger
}

func NewCloudinaryResolver(cloudinaryURL string, log *zap.Logger) (*CloudinaryResolver, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary url not configured")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from URL fail: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CloudinaryResolver{cld: cld, log: log}, nil
}

func PublicID(ref string) string {
	return strings.TrimSuffix(ref, path.Ext(ref))
}

func (r *CloudinaryResolver) Resolve(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}

	img, err := r.cld.Image(PublicID(ref))
	if err != nil {
		r.log.Warn("cloudinary image asset failed", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	img.Transformation = "q_auto,f_auto"

	url, err := img.String()
	if err != nil {
		r.log.Warn("cloudinary url build failed", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	return url
}
