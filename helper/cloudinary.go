package helper

import (
	"log"
	"sync"

	"theater_manager/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

var (
	cldOnce   sync.Once
	cldClient *cloudinary.Cloudinary
)

// CloudinaryClient returns the shared upload client, or nil when the
// credentials are not configured.
func CloudinaryClient() *cloudinary.Cloudinary {
	cldOnce.Do(func() {
		name := config.Config("CLOUDINARY_CLOUD_NAME")
		if name == "" {
			log.Println("cloudinary not configured, poster upload disabled")
			return
		}
		cld, err := cloudinary.NewFromParams(
			name,
			config.Config("CLOUDINARY_API_KEY"),
			config.Config("CLOUDINARY_API_SECRET"),
		)
		if err != nil {
			log.Printf("cloudinary init failed: %v", err)
			return
		}
		cldClient = cld
	})
	return cldClient
}
