package routes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"agency-site-server/response"
	"agency-site-server/services"
	"agency-site-server/storage"
)

// bindBody binds a JSON, multipart or urlencoded body by content type
func bindBody(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		return bindError(err)
	}
	return nil
}

// bindError turns a binding failure into a 400 naming the first bad field
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return response.NewBadRequest(strings.ToLower(fe.Field()) + " is invalid (" + fe.Tag() + ")")
	}
	if errors.Is(err, io.EOF) {
		return response.NewBadRequest("Request body is required")
	}
	return &response.AppError{HTTPStatus: http.StatusBadRequest, Message: "Invalid request format", Err: err}
}

// isMultipart reports whether the request carries a multipart form
func isMultipart(c *gin.Context) bool {
	return c.ContentType() == binding.MIMEMultipartPOSTForm
}

// imageFromForm reads the optional "image" file and the "remove_image" flag
func imageFromForm(c *gin.Context) (*services.ImageFile, bool, error) {
	if !isMultipart(c) {
		return nil, false, nil
	}

	remove, _ := strconv.ParseBool(c.PostForm("remove_image"))

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, remove, nil
	}
	if err != nil {
		return nil, remove, response.NewBadRequest("Invalid image upload")
	}

	// Size and type are checked before the body is read
	if err := storage.ValidateImage(fh.Filename, fh.Size); err != nil {
		return nil, remove, err
	}

	data, err := readFile(fh)
	if err != nil {
		return nil, remove, response.NewBadRequest("Invalid image upload")
	}
	return &services.ImageFile{Filename: fh.Filename, Size: fh.Size, Data: data}, remove, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
