package handlers

import (
	"context"
	"io"
	"net/http"

	"relief-coordination-api/internal/api/middleware"
	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"
	"relief-coordination-api/internal/organization"

	"github.com/gin-gonic/gin"
)

// maxCertificateSize bounds certificate uploads.
const maxCertificateSize = 10 << 20

type OrganizationService interface {
	Register(ctx context.Context, req organization.RegisterRequest) (*models.Organization, error)
	Get(ctx context.Context, registrationNumber string) (*models.Organization, error)
	List(ctx context.Context, status string) ([]models.Organization, error)
	Approve(ctx context.Context, registrationNumber, reviewer string) (*models.Organization, error)
	Reject(ctx context.Context, registrationNumber, reviewer string) (*models.Organization, error)
	UploadCertificate(ctx context.Context, registrationNumber string, file io.Reader, fileName, contentType string) (*models.Organization, error)
}

type OrganizationHandler struct {
	Service OrganizationService
}

func (h *OrganizationHandler) Register(c *gin.Context) {
	var req organization.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	regNo := c.Param("registrationNumber")
	if !canActFor(c, regNo) {
		forbidOtherOrganization(c)
		return
	}
	org, err := h.Service.Get(c.Request.Context(), regNo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	orgs, err := h.Service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

func (h *OrganizationHandler) Approve(c *gin.Context) {
	org, err := h.Service.Approve(c.Request.Context(), c.Param("registrationNumber"), c.GetString(middleware.ContextUserEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandler) Reject(c *gin.Context) {
	org, err := h.Service.Reject(c.Request.Context(), c.Param("registrationNumber"), c.GetString(middleware.ContextUserEmail))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// UploadCertificate accepts a multipart "certificate" file.
func (h *OrganizationHandler) UploadCertificate(c *gin.Context) {
	regNo := c.Param("registrationNumber")
	if !canActFor(c, regNo) {
		forbidOtherOrganization(c)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCertificateSize)
	fileHeader, err := c.FormFile("certificate")
	if err != nil {
		respondError(c, apperr.Invalid("certificate", "a file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperr.Invalid("certificate", "could not be read"))
		return
	}
	defer file.Close()

	org, err := h.Service.UploadCertificate(c.Request.Context(), regNo, file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}
