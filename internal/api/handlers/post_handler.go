package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/backend/internal/services"
	"github.com/collegeconnect/backend/internal/utils"
)

type PostHandler struct {
	svc services.PostService
}

func NewPostHandler(svc services.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func postID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, utils.E(utils.CodeInvalidArgument, "PostHandler", "invalid post id", err)
	}
	return uint(id), nil
}

func (h *PostHandler) Feed(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	posts, err := h.svc.Feed(c.Request.Context(), caller, c.Query("category"), utils.ParsePageParams(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, err := postID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	post, err := h.svc.Get(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var body services.CreatePostRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PostHandler.Create", "invalid request body", err))
		return
	}

	post, err := h.svc.Create(c.Request.Context(), caller, body)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, err := postID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post deleted."})
}

func (h *PostHandler) ToggleLike(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, err := postID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := h.svc.ToggleLike(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PostHandler) ListComments(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, err := postID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	comments, err := h.svc.ListComments(c.Request.Context(), caller, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, err := postID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "PostHandler.AddComment", "invalid request body", err))
		return
	}

	comment, err := h.svc.AddComment(c.Request.Context(), caller, id, body.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
