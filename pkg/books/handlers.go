package books

import (
	"net/http"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shishobooks/catalog/pkg/errcodes"
	"github.com/shishobooks/catalog/pkg/models"
	"github.com/shishobooks/catalog/pkg/optional"
	"github.com/shishobooks/catalog/pkg/pagination"
)

const publishDateFormatMessage = `"publish_date" should be a valid date in the format of YYYY-MM-DD`

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := pagination.Query{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.bookService.ListBooks(ctx, params.Criteria())
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Data     []*models.Book      `json:"data"`
		Metadata pagination.Metadata `json:"metadata"`
	}{page.Books, page.Metadata}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.RetrieveBookWithAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, dataResponse{book}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publishDate, err := models.ParseDate(params.PublishDate)
	if err != nil {
		return errcodes.ValidationError(publishDateFormatMessage)
	}

	book, err := h.bookService.CreateBook(ctx, &models.Book{
		Title:       params.Title,
		Description: params.Description,
		PublishDate: publishDate,
		Author:      models.AuthorRef(*params.AuthorID),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, path.Join(c.Request().URL.Path, strconv.Itoa(book.ID)))
	return errors.WithStack(c.JSON(http.StatusCreated, dataResponse{book}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	patch := Patch{
		Title:       optional.FromPtr(params.Title),
		Description: optional.FromPtr(params.Description),
		AuthorID:    optional.FromPtr(params.AuthorID),
	}
	if params.PublishDate != nil {
		publishDate, err := models.ParseDate(*params.PublishDate)
		if err != nil {
			return errcodes.ValidationError(publishDateFormatMessage)
		}
		patch.PublishDate = optional.Some(publishDate)
	}

	book, err := h.bookService.UpdateBook(ctx, id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, dataResponse{book}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, messageResponse{"book successfully deleted"}))
}

type dataResponse struct {
	Data interface{} `json:"data"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func parseID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errcodes.ValidationTypeError(`"id" should be of type int`)
	}
	if id < 1 {
		return 0, errcodes.ValidationError(`"id" must be greater than or equal to 1`)
	}
	return id, nil
}
