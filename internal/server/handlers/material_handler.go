package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/domain/models"
	"github.com/mamadbah2/labshare/internal/server/views"
	"github.com/mamadbah2/labshare/internal/service/catalog"
)

// MaterialHandler serves the listing, add, reserve and remove pages.
//
// Store failures and undecodable form bodies are logged and swallowed:
// pages render as if the store returned nothing and redirects still happen.
// Only a missing or malformed id is reported to the client.
type MaterialHandler struct {
	svc    catalog.Service
	logger *zap.Logger
}

// NewMaterialHandler constructs the HTTP handler adapter.
func NewMaterialHandler(svc catalog.Service, logger *zap.Logger) *MaterialHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialHandler{svc: svc, logger: logger}
}

type listingPage struct {
	Title     string
	Search    string
	Materials []models.Material
}

type addPage struct {
	Title string
}

type detailPage struct {
	Title    string
	Found    bool
	Material models.Material
}

// Index lists every material.
func (h *MaterialHandler) Index(c *gin.Context) {
	h.renderListing(c, "")
}

// Search lists the materials whose name equals the submitted search exactly.
func (h *MaterialHandler) Search(c *gin.Context) {
	var form models.SearchForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("invalid search form, listing everything", zap.Error(err))
		form.Search = ""
	}

	h.renderListing(c, form.Search)
}

func (h *MaterialHandler) renderListing(c *gin.Context, search string) {
	materials, err := h.svc.List(c.Request.Context(), search)
	if err != nil {
		h.logger.Error("failed listing materials", zap.String("search", search), zap.Error(err))
		materials = nil
	}

	c.HTML(http.StatusOK, views.Index, listingPage{
		Title:     "Materials",
		Search:    search,
		Materials: materials,
	})
}

// AddForm renders the empty submission form.
func (h *MaterialHandler) AddForm(c *gin.Context) {
	c.HTML(http.StatusOK, views.AddMaterials, addPage{Title: "Add Material"})
}

// Add stores the submitted material and always redirects back to the form.
func (h *MaterialHandler) Add(c *gin.Context) {
	defer c.Redirect(http.StatusSeeOther, "/add")

	var form models.MaterialForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("invalid material form, nothing stored", zap.Error(err))
		return
	}

	id, err := h.svc.Add(c.Request.Context(), form)
	if err != nil {
		h.logger.Error("failed adding material", zap.String("name", form.Name), zap.Error(err))
	} else {
		h.logger.Info("material entry created", zap.String("id", id.Hex()))
	}
}

// Reserve renders the detail page for a single material.
func (h *MaterialHandler) Reserve(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	material, found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed loading material", zap.String("id", id.Hex()), zap.Error(err))
	}

	c.HTML(http.StatusOK, views.ItemListing, detailPage{
		Title:    "Reserve Material",
		Found:    found,
		Material: material,
	})
}

// Remove deletes the material and always redirects to the listing.
func (h *MaterialHandler) Remove(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Remove(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed removing material", zap.String("id", id.Hex()), zap.Error(err))
	} else {
		h.logger.Info("documents deleted", zap.String("id", id.Hex()), zap.Int64("deleted", deleted))
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// RemoveByForm answers POST /remove, which has no removal semantics.
func (h *MaterialHandler) RemoveByForm(c *gin.Context) {
	var form models.RemoveForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("invalid remove form", zap.Error(err))
	}

	h.logger.Warn("remove by form is not supported", zap.String("remove", form.Remove))
	c.String(http.StatusNotImplemented, "removal by form is not supported")
}

// bindID parses the id query parameter, answering 400 when it is missing or malformed.
func (h *MaterialHandler) bindID(c *gin.Context) (primitive.ObjectID, bool) {
	var query models.IDQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.logger.Warn("missing material id", zap.Error(err))
		c.String(http.StatusBadRequest, "missing material id")
		return primitive.NilObjectID, false
	}

	id, err := models.ParseID(query.ID)
	if err != nil {
		h.logger.Warn("malformed material id", zap.String("id", query.ID), zap.Error(err))
		c.String(http.StatusBadRequest, "malformed material id")
		return primitive.NilObjectID, false
	}
	return id, true
}
