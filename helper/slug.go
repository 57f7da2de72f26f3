package helper

import (
	"fmt"

	"theater_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueMovieSlug derives a url-safe slug from the movie name,
// suffixing a counter when the base slug is taken.
func GenerateUniqueMovieSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Movie{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
