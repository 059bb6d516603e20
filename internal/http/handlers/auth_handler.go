package handlers

import (
	"errors"
	"time"

	"opticaluz/internal/domain"
	applog "opticaluz/internal/log"
	"opticaluz/internal/services"
	"opticaluz/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

// GET /login?role=cliente|admin
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	role := c.Query("role", domain.RoleCliente)
	if role != domain.RoleAdmin {
		role = domain.RoleCliente
	}
	return render(c, "login", fiber.Map{"Role": role, "Err": ""})
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, okEmail := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	role := c.FormValue("role", domain.RoleCliente)

	if !okEmail || !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Role": role, "Err": "Correo o contraseña incorrectos", "CSRFToken": c.Cookies("csrf_"),
		})
	}

	u, err := h.Auth.Login(sid, email, pass)
	if err != nil || u.Role != role {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Role": role, "Err": "Correo o contraseña incorrectos", "CSRFToken": c.Cookies("csrf_"),
		})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email, "role": u.Role})
	if u.EsAdmin() {
		return c.Redirect("/admin")
	}
	return c.Redirect("/")
}

// GET /registro
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "registro", fiber.Map{"Err": ""})
}

// POST /registro: cliente self-registration. Admin registration reuses the
// same handler but only succeeds while no admin account exists.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	reg := services.Registro{Role: c.FormValue("role", domain.RoleCliente)}

	fail := func(msg string) error {
		return c.Status(fiber.StatusBadRequest).Render("registro", fiber.Map{
			"Err": msg, "CSRFToken": c.Cookies("csrf_"),
		})
	}

	var ok bool
	if reg.Nombre, ok = validate.Nombre(c.FormValue("nombre")); !ok {
		return fail("Ingresa tu nombre")
	}
	if reg.Apellidos, ok = validate.Nombre(c.FormValue("apellidos")); !ok {
		return fail("Ingresa tus apellidos")
	}
	if reg.Email, ok = validate.Email(c.FormValue("email")); !ok {
		return fail("Correo inválido")
	}
	if reg.Celular, ok = validate.Celular(c.FormValue("celular")); !ok {
		return fail("Celular inválido (9 dígitos)")
	}
	if reg.DNI, ok = validate.DNI(c.FormValue("dni")); !ok {
		return fail("DNI inválido (8 dígitos)")
	}
	reg.Password = c.FormValue("password")
	if !validate.Password(reg.Password) {
		return fail("La contraseña debe tener al menos 6 caracteres")
	}

	if _, err := h.Auth.Register(reg); err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"email": reg.Email})
		switch {
		case errors.Is(err, services.ErrEmailTomado):
			return fail("El correo ya está registrado")
		case errors.Is(err, services.ErrAdminCerrado):
			return fail("Ya existe una cuenta de administrador")
		default:
			return fail("No se pudo completar el registro")
		}
	}

	applog.Audit(c, "auth.register", map[string]any{"email": reg.Email})
	return c.Redirect("/login?role=" + reg.Role)
}

// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}

// GET /perfil, behind RequireCliente.
func (h *AuthHandler) Perfil(c *fiber.Ctx) error {
	u, _ := c.Locals("user").(*domain.Usuario)
	if u == nil {
		return c.Redirect("/login?role=cliente")
	}
	return render(c, "perfil", fiber.Map{"U": u})
}

// GET /api/v1/admin-existe. The login page probes this to decide whether to
// offer admin registration.
func (h *AuthHandler) AdminExists(c *fiber.Ctx) error {
	exists, err := h.Auth.Users.AdminExists()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "no disponible"})
	}
	return c.JSON(fiber.Map{"existe": exists})
}
