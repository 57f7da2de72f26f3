package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theater_manager/constants"
	"theater_manager/database"
	"theater_manager/helper"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UploadMoviePoster stores a poster image on Cloudinary and points the
// movie's movie_poster_url at the uploaded asset.
func UploadMoviePoster(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	cld := helper.CloudinaryClient()
	if cld == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "Poster upload is not configured", nil)
	}

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	posterFile, err := c.FormFile("poster")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "poster file is required", err)
	}

	posterReader, err := posterFile.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "failed to read poster file", err)
	}
	defer posterReader.Close()

	result, err := cld.Upload.Upload(context.Background(), posterReader, uploader.UploadParams{
		Folder:       "movies/posters",
		PublicID:     fmt.Sprintf("movie_%d_poster_%d", movieId, time.Now().Unix()),
		ResourceType: "image",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "failed to upload poster", err)
	}

	if err := db.Model(&movie).Update("movie_poster_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	movie.MoviePosterURL = result.SecureURL

	return utils.SuccessResponse(c, fiber.StatusOK, serializeMovie(movie))
}
