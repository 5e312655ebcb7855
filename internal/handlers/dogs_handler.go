package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/daycare-scheduler/internal/usecase/dog"
)

type DogsHandler struct {
	dogs   *dog.Dogs
	photos *dog.UploadPhoto
}

func NewDogsHandler(dogs *dog.Dogs, photos *dog.UploadPhoto) *DogsHandler {
	return &DogsHandler{dogs: dogs, photos: photos}
}

type CreateDogRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Breed   string `json:"breed" binding:"max=100"`
	OwnerID uint   `json:"ownerId"`
}

type UpdateDogRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Breed *string `json:"breed" binding:"omitempty,max=100"`
}

func (h *DogsHandler) List(c *gin.Context) {
	dogs, err := h.dogs.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dogs)
}

func (h *DogsHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	d, err := h.dogs.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DogsHandler) Create(c *gin.Context) {
	var req CreateDogRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.dogs.Create(c.Request.Context(), actorFrom(c), dog.CreateDogInput{
		Name:    req.Name,
		Breed:   req.Breed,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, d)
}

func (h *DogsHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateDogRequest
	if !bindJSON(c, &req) {
		return
	}
	d, err := h.dogs.Update(c.Request.Context(), actorFrom(c), id, dog.UpdateDogInput{
		Name:  req.Name,
		Breed: req.Breed,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, d)
}

func (h *DogsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.dogs.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// UploadPhoto takes the image either as a multipart "photo" field or as the
// raw request body.
func (h *DogsHandler) UploadPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, dog.MaxPhotoBytes+1<<20)

	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, ferr := c.FormFile("photo")
		if ferr != nil {
			httperr.Respond(c, httperr.MissingFields("photo"))
			return
		}
		f, oerr := fh.Open()
		if oerr != nil {
			httperr.Respond(c, httperr.Validation("cannot read photo").WithCode("invalid_image"))
			return
		}
		defer f.Close()
		raw, err = io.ReadAll(f)
	} else {
		raw, err = io.ReadAll(c.Request.Body)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Respond(c, httperr.Validation("photo is too large").WithCode("photo_too_large"))
			return
		}
		httperr.Respond(c, err)
		return
	}

	d, err := h.photos.Execute(c.Request.Context(), actorFrom(c), id, raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, d)
}
