package http

import (
	"net/http"
	"time"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/http/middleware"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/service"
	"github.com/invenhq/inventory-api/pkg/validator"
)

const birthDateLayout = "2006-01-02"

type registerAdminRequest struct {
	FirstName string       `json:"firstName" validate:"required,max=100"`
	LastName  string       `json:"lastName" validate:"required,max=100"`
	Email     string       `json:"email" validate:"required,email"`
	BirthDate string       `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Gender    model.Gender `json:"gender" validate:"required,enum"`
	Password  string       `json:"password" validate:"required,min=6"`
}

type updateAdminRequest struct {
	FirstName *string       `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string       `json:"lastName" validate:"omitempty,max=100"`
	Email     *string       `json:"email" validate:"omitempty,email"`
	BirthDate *string       `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Gender    *model.Gender `json:"gender" validate:"omitempty,enum"`
	Password  *string       `json:"password" validate:"omitempty,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string      `json:"access_token"`
	Admin       model.Admin `json:"admin"`
}

type adminHandler struct {
	adminSvc  service.AdminService
	validator validator.Validator
}

func newAdminHandler(adminSvc service.AdminService, v validator.Validator) *adminHandler {
	return &adminHandler{
		adminSvc:  adminSvc,
		validator: v,
	}
}

func (h *adminHandler) register(w http.ResponseWriter, r *http.Request) error {
	var req registerAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	// Validated by the datetime tag above.
	birthDate, _ := time.Parse(birthDateLayout, req.BirthDate)

	admin, err := h.adminSvc.Register(r.Context(), service.RegisterAdminParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		BirthDate: birthDate,
		Gender:    req.Gender,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, admin)
	return nil
}

func (h *adminHandler) login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	token, admin, err := h.adminSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		Admin:       admin,
	})
	return nil
}

// profile returns the admin identified by the access token.
func (h *adminHandler) profile(w http.ResponseWriter, r *http.Request) error {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return apperr.UnauthenticatedErr
	}

	admin, err := h.adminSvc.Get(r.Context(), claims.AdminID)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, admin)
	return nil
}

func (h *adminHandler) updateProfile(w http.ResponseWriter, r *http.Request) error {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return apperr.UnauthenticatedErr
	}
	return h.update(w, r, claims.AdminID)
}

func (h *adminHandler) list(w http.ResponseWriter, r *http.Request) error {
	admins, err := h.adminSvc.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, admins)
	return nil
}

func (h *adminHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	admin, err := h.adminSvc.Get(r.Context(), id)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, admin)
	return nil
}

func (h *adminHandler) updateByID(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}
	return h.update(w, r, id)
}

func (h *adminHandler) update(w http.ResponseWriter, r *http.Request, id int64) error {
	var req updateAdminRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	params := service.UpdateAdminParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    req.Gender,
		Password:  req.Password,
	}
	if req.BirthDate != nil {
		birthDate, _ := time.Parse(birthDateLayout, *req.BirthDate)
		params.BirthDate = &birthDate
	}

	admin, err := h.adminSvc.Update(r.Context(), id, params)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, admin)
	return nil
}

func (h *adminHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.adminSvc.Delete(r.Context(), id); err != nil {
		return err
	}

	writeJSON(w, http.StatusNoContent, nil)
	return nil
}
