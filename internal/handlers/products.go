package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/export"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/filter"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/mapper"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/pkg/requestid"
	"github.com/Ramax12/ArtiVana-nuxt-filter/internal/storefront"
)

// Pagination headers set on the product listing.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPageSize   = "X-Page-Size"
	HeaderTotalPages = "X-Total-Pages"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ProductsHandler serves the storefront product endpoints.
type ProductsHandler struct {
	service *storefront.Service
	opts    QueryOptions
	logger  *zerolog.Logger
}

// NewProductsHandler creates the handler.
func NewProductsHandler(service *storefront.Service, opts QueryOptions) *ProductsHandler {
	logger := log.With().Str("handler", "products").Logger()
	return &ProductsHandler{service: service, opts: opts, logger: &logger}
}

// ListProducts returns one page of filtered products
// @Summary Filter products
// @Description Returns the requested page of products matching the active filters. Pagination totals are returned in the X-Total-Count, X-Page, X-Page-Size and X-Total-Pages headers.
// @Tags products
// @Produce json
// @Param subcategory query int false "Subcategory id"
// @Param subsubcategory query int false "Subsubcategory id"
// @Param subsubcategories[] query []int false "Subsubcategory ids. Also accepted as subsubcategories=1,2" collectionFormat(multi)
// @Param brands[] query []int false "Brand ids. Also accepted as brands=1,2" collectionFormat(multi)
// @Param min_price query number false "Minimum final price"
// @Param max_price query number false "Maximum final price"
// @Param rating query bool false "Only products rated 4 and up"
// @Param characteristics[color][] query []int false "Option ids of one characteristic. Repeat as characteristics[<slug>][] for any characteristic slug" collectionFormat(multi)
// @Param sort query string false "Sort key" Enums(rating_desc, price_asc, price_desc, name_asc, name_desc)
// @Param page query int false "Page number" default(1) minimum(1)
// @Success 200 {array} mapper.ProductView
// @Failure 400 {object} ErrorResponse "Invalid query parameter"
// @Failure 500 {object} ErrorResponse "Catalog integrity error"
// @Router /api/products/filter [get]
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	req, ok := h.parse(c)
	if !ok {
		return
	}

	page, err := h.service.Products(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header(HeaderTotalCount, strconv.Itoa(page.Total))
	c.Header(HeaderPage, strconv.Itoa(page.Page))
	c.Header(HeaderPageSize, strconv.Itoa(page.PageSize))
	c.Header(HeaderTotalPages, strconv.Itoa(page.TotalPages))
	c.JSON(http.StatusOK, page.Items)
}

// FilterMeta returns facet counts for the active filters
// @Summary Filter metadata
// @Description Returns the number of matching products and, for every facet value, the number of products that would match with that value selected.
// @Tags products
// @Produce json
// @Param subcategory query int false "Subcategory id"
// @Param subsubcategory query int false "Subsubcategory id"
// @Param subsubcategories[] query []int false "Subsubcategory ids. Also accepted as subsubcategories=1,2" collectionFormat(multi)
// @Param brands[] query []int false "Brand ids. Also accepted as brands=1,2" collectionFormat(multi)
// @Param min_price query number false "Minimum final price"
// @Param max_price query number false "Maximum final price"
// @Param rating query bool false "Only products rated 4 and up"
// @Param characteristics[color][] query []int false "Option ids of one characteristic. Repeat as characteristics[<slug>][] for any characteristic slug" collectionFormat(multi)
// @Param sort query string false "Sort key. Accepted for parity with the product list; does not affect counts" Enums(rating_desc, price_asc, price_desc, name_asc, name_desc)
// @Param page query int false "Page number. Validated as an integer; does not affect counts"
// @Success 200 {object} filter.Meta
// @Failure 400 {object} ErrorResponse "Invalid query parameter"
// @Router /api/products/filter-meta [get]
func (h *ProductsHandler) FilterMeta(c *gin.Context) {
	req, ok := h.parse(c)
	if !ok {
		return
	}

	meta, err := h.service.FilterMeta(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// ExportProducts returns every filtered product as an XLSX workbook
// @Summary Export filtered products
// @Description Returns all products matching the active filters, unpaginated, as an XLSX workbook with a second sheet of facet counts.
// @Tags catalog
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security InternalAPIKey
// @Param subcategory query int false "Subcategory id"
// @Param subsubcategory query int false "Subsubcategory id"
// @Param subsubcategories[] query []int false "Subsubcategory ids. Also accepted as subsubcategories=1,2" collectionFormat(multi)
// @Param brands[] query []int false "Brand ids. Also accepted as brands=1,2" collectionFormat(multi)
// @Param min_price query number false "Minimum final price"
// @Param max_price query number false "Maximum final price"
// @Param rating query bool false "Only products rated 4 and up"
// @Param characteristics[color][] query []int false "Option ids of one characteristic. Repeat as characteristics[<slug>][] for any characteristic slug" collectionFormat(multi)
// @Param sort query string false "Sort key" Enums(rating_desc, price_asc, price_desc, name_asc, name_desc)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid query parameter"
// @Failure 500 {object} ErrorResponse "Catalog integrity error"
// @Router /internal/catalog/export [get]
func (h *ProductsHandler) ExportProducts(c *gin.Context) {
	req, ok := h.parse(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	views, err := h.service.Listing(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	meta, err := h.service.FilterMeta(ctx, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	content, err := export.Workbook(views, &meta)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, content)
}

func (h *ProductsHandler) parse(c *gin.Context) (filter.Request, bool) {
	req, err := ParseFilterRequest(c.Request.URL.Query(), h.opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return filter.Request{}, false
	}
	return req, true
}

func (h *ProductsHandler) fail(c *gin.Context, err error) {
	var integrity *mapper.DataIntegrityError
	if errors.As(err, &integrity) {
		h.logger.Error().
			Err(err).
			Int64("product_id", integrity.ProductID).
			Str("request_id", requestid.FromContext(c.Request.Context())).
			Msg("Catalog data integrity violation")
	} else {
		h.logger.Error().Err(err).Msg("Storefront query failed")
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
