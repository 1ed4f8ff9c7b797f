package handlers

import (
	"errors"
	"net/http"

	"hpquiz/database"
	"hpquiz/services"

	"github.com/gin-gonic/gin"
)

type FormHandler struct {
	formService *services.FormService
}

func NewFormHandler(formService *services.FormService) *FormHandler {
	return &FormHandler{
		formService: formService,
	}
}

func (h *FormHandler) GetForm(c *gin.Context) {
	id := c.Query("id")
	name := c.Query("name")

	form, err := h.formService.GetForm(c.Request.Context(), id, name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingLookupParam), errors.Is(err, services.ErrInvalidFormID):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) CreateForm(c *gin.Context) {
	var req services.CreateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := h.formService.CreateForm(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, form)
}

func (h *FormHandler) CreateQuestions(c *gin.Context) {
	formID := c.Query("form_id")
	if formID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "form_id is required"})
		return
	}

	var reqs []services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one question is required"})
		return
	}

	if err := h.formService.CreateQuestions(c.Request.Context(), formID, reqs); err != nil {
		if errors.Is(err, services.ErrInvalidFormID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Questions created successfully."})
}
