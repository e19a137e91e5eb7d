package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"
	"relief-coordination-api/internal/organization"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrganizations struct {
	registered  []organization.RegisterRequest
	reviewer    string
	certType    string
	certName    string
	certPayload string
	err         error
}

func (f *fakeOrganizations) Register(_ context.Context, req organization.RegisterRequest) (*models.Organization, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = append(f.registered, req)
	return &models.Organization{RegistrationNumber: req.RegistrationNumber, Status: models.OrgStatusPending}, nil
}

func (f *fakeOrganizations) Get(_ context.Context, regNo string) (*models.Organization, error) {
	return &models.Organization{RegistrationNumber: regNo}, f.err
}

func (f *fakeOrganizations) List(context.Context, string) ([]models.Organization, error) {
	return []models.Organization{}, f.err
}

func (f *fakeOrganizations) Approve(_ context.Context, regNo, reviewer string) (*models.Organization, error) {
	f.reviewer = reviewer
	return &models.Organization{RegistrationNumber: regNo, Status: models.OrgStatusApproved, ReviewedBy: reviewer}, f.err
}

func (f *fakeOrganizations) Reject(_ context.Context, regNo, reviewer string) (*models.Organization, error) {
	f.reviewer = reviewer
	return &models.Organization{RegistrationNumber: regNo, Status: models.OrgStatusRejected, ReviewedBy: reviewer}, f.err
}

func (f *fakeOrganizations) UploadCertificate(_ context.Context, regNo string, file io.Reader, name, contentType string) (*models.Organization, error) {
	b, _ := io.ReadAll(file)
	f.certPayload, f.certName, f.certType = string(b), name, contentType
	return &models.Organization{RegistrationNumber: regNo}, f.err
}

func newOrganizationRouter(svc OrganizationService, role, regNo string) *gin.Engine {
	h := &OrganizationHandler{Service: svc}
	r := gin.New()
	r.POST("/organizations/register", h.Register)
	g := r.Group("/", withIdentity("admin@relief.org", role, regNo))
	g.GET("/organizations/:registrationNumber", h.GetOrganization)
	g.POST("/organizations/:registrationNumber/certificate", h.UploadCertificate)
	g.POST("/admin/organizations/:registrationNumber/approve", h.Approve)
	return r
}

func TestRegisterOrganization(t *testing.T) {
	svc := &fakeOrganizations{}
	r := newOrganizationRouter(svc, "", "")

	rec := doJSON(t, r, http.MethodPost, "/organizations/register", organization.RegisterRequest{
		RegistrationNumber: "HOSP-001", Name: "City Hospital", Type: models.OrgTypeHospital,
		City: "Pune", Email: "ops@hospital.org", Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.registered, 1)

	svc.err = apperr.Conflict("organization %q", "HOSP-001")
	rec = doJSON(t, r, http.MethodPost, "/organizations/register", map[string]string{"registrationNumber": "HOSP-001"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveRecordsReviewer(t *testing.T) {
	svc := &fakeOrganizations{}
	r := newOrganizationRouter(svc, models.RoleSuperAdmin, "")

	rec := doJSON(t, r, http.MethodPost, "/admin/organizations/HOSP-001/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin@relief.org", svc.reviewer)
	assert.Equal(t, models.OrgStatusApproved, decode[models.Organization](t, rec).Status)
}

func certificateRequest(t *testing.T, regNo, contentType string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="certificate"; filename="license.pdf"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.7"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/organizations/"+regNo+"/certificate", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadCertificate(t *testing.T) {
	svc := &fakeOrganizations{}
	r := newOrganizationRouter(svc, models.RoleOrganization, "HOSP-001")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, certificateRequest(t, "HOSP-001", "application/pdf"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", svc.certType)
	assert.Equal(t, "license.pdf", svc.certName)
	assert.Equal(t, "%PDF-1.7", svc.certPayload)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, certificateRequest(t, "HOSP-002", "application/pdf"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUploadCertificateMissingFile(t *testing.T) {
	r := newOrganizationRouter(&fakeOrganizations{}, models.RoleAdmin, "")
	rec := doJSON(t, r, http.MethodPost, "/organizations/HOSP-001/certificate", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "certificate", decode[map[string]string](t, rec)["field"])
}
