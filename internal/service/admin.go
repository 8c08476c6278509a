package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/auth"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/repository"
)

type RegisterAdminParams struct {
	FirstName string
	LastName  string
	Email     string
	BirthDate time.Time
	Gender    model.Gender
	Password  string
}

// UpdateAdminParams is a partial patch; nil fields are left unchanged.
type UpdateAdminParams struct {
	FirstName *string
	LastName  *string
	Email     *string
	BirthDate *time.Time
	Gender    *model.Gender
	Password  *string
}

type AdminService interface {
	Register(ctx context.Context, params RegisterAdminParams) (model.Admin, error)
	// Login verifies credentials and returns a signed access token with the
	// authenticated admin. Unknown email and wrong password fail identically.
	Login(ctx context.Context, email, password string) (string, model.Admin, error)
	Get(ctx context.Context, id int64) (model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Update(ctx context.Context, id int64, params UpdateAdminParams) (model.Admin, error)
	Delete(ctx context.Context, id int64) error
}

type adminService struct {
	adminRepo repository.AdminRepository
	issuer    *auth.Issuer
}

func NewAdminService(adminRepo repository.AdminRepository, issuer *auth.Issuer) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		issuer:    issuer,
	}
}

func (s *adminService) Register(ctx context.Context, params RegisterAdminParams) (model.Admin, error) {
	existing, err := s.adminRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		return model.Admin{}, fmt.Errorf("admin repository get by email: %w", err)
	}
	if existing != nil {
		return model.Admin{}, apperr.EmailConflictErr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.Admin{}, fmt.Errorf("hash password: %w", err)
	}

	admin := model.Admin{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Email:        params.Email,
		BirthDate:    params.BirthDate,
		Gender:       params.Gender,
		PasswordHash: string(hash),
	}
	if err := s.adminRepo.Create(ctx, &admin); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index is authoritative.
		if repository.IsUniqueViolation(err) {
			return model.Admin{}, apperr.EmailConflictErr
		}
		return model.Admin{}, fmt.Errorf("admin repository create: %w", err)
	}

	return admin, nil
}

func (s *adminService) Login(ctx context.Context, email, password string) (string, model.Admin, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", model.Admin{}, fmt.Errorf("admin repository get by email: %w", err)
	}
	if admin == nil {
		return "", model.Admin{}, apperr.InvalidCredentialsErr
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", model.Admin{}, apperr.InvalidCredentialsErr
	}

	token, err := s.issuer.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return "", model.Admin{}, fmt.Errorf("generate token: %w", err)
	}

	return token, *admin, nil
}

func (s *adminService) Get(ctx context.Context, id int64) (model.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return model.Admin{}, fmt.Errorf("admin repository get by id: %w", err)
	}
	if admin == nil {
		return model.Admin{}, apperr.AdminNotFoundErr
	}
	return *admin, nil
}

func (s *adminService) List(ctx context.Context) ([]model.Admin, error) {
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin repository list: %w", err)
	}
	return admins, nil
}

func (s *adminService) Update(ctx context.Context, id int64, params UpdateAdminParams) (model.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return model.Admin{}, fmt.Errorf("admin repository get by id: %w", err)
	}
	if admin == nil {
		return model.Admin{}, apperr.AdminNotFoundErr
	}

	if params.Email != nil && *params.Email != admin.Email {
		existing, err := s.adminRepo.GetByEmail(ctx, *params.Email)
		if err != nil {
			return model.Admin{}, fmt.Errorf("admin repository get by email: %w", err)
		}
		if existing != nil {
			return model.Admin{}, apperr.EmailConflictErr
		}
		admin.Email = *params.Email
	}

	if params.FirstName != nil {
		admin.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		admin.LastName = *params.LastName
	}
	if params.BirthDate != nil {
		admin.BirthDate = *params.BirthDate
	}
	if params.Gender != nil {
		admin.Gender = *params.Gender
	}
	if params.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*params.Password), bcrypt.DefaultCost)
		if err != nil {
			return model.Admin{}, fmt.Errorf("hash password: %w", err)
		}
		admin.PasswordHash = string(hash)
	}

	if err := s.adminRepo.Update(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return model.Admin{}, apperr.EmailConflictErr
		}
		return model.Admin{}, fmt.Errorf("admin repository update: %w", err)
	}

	return *admin, nil
}

func (s *adminService) Delete(ctx context.Context, id int64) error {
	found, err := s.adminRepo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperr.AdminHasTransactionsErr
		}
		return fmt.Errorf("admin repository delete: %w", err)
	}
	if !found {
		return apperr.AdminNotFoundErr
	}
	return nil
}
