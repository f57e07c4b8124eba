package authors

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

type handler struct {
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := pagination.Query{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.authorService.ListAuthors(ctx, params.Criteria())
	if err != nil {
		return errors.WithStack(err)
	}

	resp := struct {
		Data     []*models.Author    `json:"data"`
		Metadata pagination.Metadata `json:"metadata"`
	}{page.Authors, page.Metadata}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	author, err := h.authorService.RetrieveAuthor(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, dataResponse{author}))
}

func (h *handler) listBooks(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	books, err := h.authorService.ListAuthorBooks(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, dataResponse{books}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	birthDate, err := models.ParseDate(params.BirthDate)
	if err != nil {
		return errcodes.ValidationError(`"birth_date" should be a valid date in the format of YYYY-MM-DD`)
	}

	author, err := h.authorService.CreateAuthor(ctx, &models.Author{
		Name:      params.Name,
		Bio:       params.Bio,
		BirthDate: birthDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, path.Join(c.Request().URL.Path, strconv.Itoa(author.ID)))
	return errors.WithStack(c.JSON(http.StatusCreated, dataResponse{author}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	params := UpdateAuthorPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	patch := Patch{
		Name: optional.FromPtr(params.Name),
		Bio:  optional.FromPtr(params.Bio),
	}
	if params.BirthDate != nil {
		birthDate, err := models.ParseDate(*params.BirthDate)
		if err != nil {
			return errcodes.ValidationError(`"birth_date" should be a valid date in the format of YYYY-MM-DD`)
		}
		patch.BirthDate = optional.Some(birthDate)
	}

	author, err := h.authorService.UpdateAuthor(ctx, id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, dataResponse{author}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.authorService.DeleteAuthor(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, messageResponse{"author successfully deleted"}))
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
