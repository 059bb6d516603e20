package services

import (
	"errors"

	"opticaluz/internal/domain"
	"opticaluz/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds     = errors.New("correo o contraseña incorrectos")
	ErrEmailTomado  = errors.New("el correo ya está registrado")
	ErrAdminCerrado = errors.New("ya existe una cuenta de administrador")
)

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.Usuario, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

type Registro struct {
	Nombre    string
	Apellidos string
	Email     string
	Celular   string
	DNI       string
	Password  string
	Role      string
}

// Register creates an account. Cliente registration is open; admin
// registration only works while no admin account exists yet.
func (s *AuthService) Register(reg Registro) (*domain.Usuario, error) {
	if reg.Role != domain.RoleAdmin {
		reg.Role = domain.RoleCliente
	}
	if reg.Role == domain.RoleAdmin {
		exists, err := s.Users.AdminExists()
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrAdminCerrado
		}
	}
	if u, _ := s.Users.ByEmail(reg.Email); u != nil {
		return nil, ErrEmailTomado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.Usuario{
		ID:        uuid.NewString(),
		Nombre:    reg.Nombre,
		Apellidos: reg.Apellidos,
		Email:     reg.Email,
		Celular:   reg.Celular,
		DNI:       reg.DNI,
		Hash:      string(hash),
		Role:      reg.Role,
	}
	if err := s.Users.Insert(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.Usuario, error) {
	return s.Users.SessionUser(sid)
}
