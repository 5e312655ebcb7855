package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/daycare-scheduler/internal/usecase/account"
)

type UsersHandler struct {
	users *account.Users
}

func NewUsersHandler(users *account.Users) *UsersHandler {
	return &UsersHandler{users: users}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     *string `json:"role"`
}

func (h *UsersHandler) Me(c *gin.Context) {
	u, err := h.users.Me(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Create(c.Request.Context(), actorFrom(c), account.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, u)
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Update(c.Request.Context(), actorFrom(c), id, account.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
