package usecase

import (
	"github.com/jhoicas/bidm-api/internal/application/auth"
	"github.com/jhoicas/bidm-api/internal/application/dto"
	"github.com/jhoicas/bidm-api/internal/domain"
	"github.com/jhoicas/bidm-api/internal/domain/entity"
	"github.com/jhoicas/bidm-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (la autenticación vive en
// application/auth).
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Get obtiene un usuario por ID.
func (uc *UserUseCase) Get(id string) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(u), nil
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.users.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *auth.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update aplica cambios parciales: nombre, rol, equipo o estado. El rol de
// super admin es un flag explícito, nunca derivado del nombre del usuario.
func (uc *UserUseCase) Update(id string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		switch *req.Role {
		case entity.RoleAdmin, entity.RolePM, entity.RoleVM, entity.RoleSuperAdmin:
			u.Role = *req.Role
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if req.Team != nil {
		u.Team = *req.Team
	}
	if req.Status != nil {
		if *req.Status != "active" && *req.Status != "inactive" {
			return nil, domain.ErrInvalidInput
		}
		u.Status = *req.Status
	}
	if err := uc.users.Update(u); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(id string) error {
	return uc.users.Delete(id)
}
