package handlers

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"opticaluz/internal/domain"
	applog "opticaluz/internal/log"
	"opticaluz/internal/repos"
	"opticaluz/internal/services"
	"opticaluz/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Catalog  *services.CatalogService
	Prods    *repos.ProductRepo
	Hero     *repos.HeroRepo
	Users    *repos.UserRepo
	MediaDir string
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	alertas, _ := h.Catalog.AlertasStock()
	return render(c, "admin_dashboard", fiber.Map{"Alertas": alertas})
}

// ---------- Hero banner ----------

// GET /admin/hero
func (h *AdminHandler) HeroForm(c *fiber.Ctx) error {
	hero, err := h.Hero.Get()
	if err != nil {
		applog.Error(c, "admin.hero.load.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el banner"})
	}
	return render(c, "admin_hero", fiber.Map{"Hero": hero})
}

// POST /admin/hero  (multipart: title, description, fondoGrande, fondoPequeno, anuncio)
func (h *AdminHandler) HeroUpdate(c *fiber.Ctx) error {
	title, ok := validate.Nombre(c.FormValue("title"))
	if !ok {
		return c.Status(400).SendString("título requerido")
	}
	hero := domain.Hero{Title: title, Description: strings.TrimSpace(c.FormValue("description"))}

	for field, dst := range map[string]*string{
		"fondoGrande":  &hero.FondoGrande,
		"fondoPequeno": &hero.FondoPequeno,
		"anuncio":      &hero.Anuncio,
	} {
		if fh, err := c.FormFile(field); err == nil && fh != nil {
			name, err := h.saveUpload(c, fh, "hero")
			if err != nil {
				applog.Error(c, "admin.hero.upload.fail", err, map[string]any{"field": field})
				return c.Status(400).SendString("imagen inválida")
			}
			*dst = name
		}
	}

	if err := h.Hero.Update(hero); err != nil {
		applog.Error(c, "admin.hero.save.fail", err, nil)
		return c.Status(400).SendString("no se pudo guardar el banner")
	}
	applog.Audit(c, "admin.hero.save", map[string]any{"title": hero.Title})
	return c.Redirect("/admin/hero")
}

// ---------- Products ----------

// GET /admin/productos?seccion=...
func (h *AdminHandler) Productos(c *fiber.Ctx) error {
	secs, err := h.Catalog.ListSecciones()
	if err != nil {
		applog.Error(c, "admin.productos.secciones.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las secciones"})
	}

	seccion := strings.TrimSpace(c.Query("seccion"))
	var productos []domain.Producto
	if seccion == "" {
		productos, err = h.Catalog.Inventario()
	} else {
		productos, err = h.Catalog.ProductosPorSeccion(seccion)
	}
	if err != nil {
		applog.Error(c, "admin.productos.list.fail", err, map[string]any{"seccion": seccion})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los productos"})
	}
	return render(c, "admin_productos", fiber.Map{"Secciones": secs, "Seccion": seccion, "Productos": productos})
}

// POST /admin/productos  (multipart: seccion, nombre, precio_normal, cantidad,
// en_oferta, precio_oferta, en_stock, imagen_1, imagen_2)
func (h *AdminHandler) ProductoAdd(c *fiber.Ctx) error {
	seccion, okSec := validate.Seccion(c.FormValue("seccion"))
	nombre, okNom := validate.Nombre(c.FormValue("nombre"))
	precioNormal, okPrecio := validate.Price(c.FormValue("precio_normal"))
	if !okSec || !okNom || !okPrecio {
		applog.Security(c, "validation.fail", map[string]any{"form": "producto"})
		return c.Status(400).SendString("datos de producto inválidos")
	}

	p := domain.Producto{
		Seccion:      seccion,
		Nombre:       nombre,
		PrecioNormal: precioNormal,
		EnOferta:     c.FormValue("en_oferta") == "1",
		EnStock:      c.FormValue("en_stock") != "0",
		Cantidad:     validate.Qty(c.FormValue("cantidad")),
	}
	if p.EnOferta {
		oferta, ok := validate.Price(c.FormValue("precio_oferta"))
		if !ok || oferta <= 0 {
			return c.Status(400).SendString("precio de oferta inválido")
		}
		p.PrecioOferta = oferta
	}

	// Both product images are required, matching the add-product form.
	for field, dst := range map[string]*string{"imagen_1": &p.Imagen1, "imagen_2": &p.Imagen2} {
		fh, err := c.FormFile(field)
		if err != nil || fh == nil {
			return c.Status(400).SendString("debes subir ambas imágenes")
		}
		name, err := h.saveUpload(c, fh, "productos")
		if err != nil {
			applog.Error(c, "admin.producto.upload.fail", err, map[string]any{"field": field})
			return c.Status(400).SendString("imagen inválida")
		}
		*dst = name
	}

	id, err := h.Prods.Insert(p)
	if err != nil {
		applog.Error(c, "admin.producto.add.fail", err, map[string]any{"nombre": p.Nombre})
		return c.Status(400).SendString("no se pudo guardar el producto")
	}
	applog.Audit(c, "admin.producto.add", map[string]any{"id": id, "nombre": p.Nombre})
	return c.Redirect("/admin/productos?seccion=" + seccion)
}

// POST /admin/productos/:id  (form: precio_normal, precio_oferta, en_oferta, en_stock, cantidad)
func (h *AdminHandler) ProductoUpdate(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("id inválido")
	}
	precioNormal, okPrecio := validate.Price(c.FormValue("precio_normal"))
	if !okPrecio {
		return c.Status(400).SendString("precio inválido")
	}
	enOferta := c.FormValue("en_oferta") == "1"
	var precioOferta float64
	if enOferta {
		precioOferta, ok = validate.Price(c.FormValue("precio_oferta"))
		if !ok || precioOferta <= 0 {
			return c.Status(400).SendString("precio de oferta inválido")
		}
	}
	cantidad := validate.Qty(c.FormValue("cantidad"))
	enStock := c.FormValue("en_stock") != "0"

	if err := h.Prods.Update(id, precioNormal, precioOferta, enOferta, enStock, cantidad); err != nil {
		applog.Error(c, "admin.producto.update.fail", err, map[string]any{"id": id})
		return c.Status(400).SendString("no se pudo actualizar")
	}
	applog.Audit(c, "admin.producto.update", map[string]any{"id": id, "precio_normal": precioNormal, "en_oferta": enOferta})
	return c.Redirect("/admin/productos")
}

// POST /admin/productos/:id/eliminar
func (h *AdminHandler) ProductoDelete(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("id inválido")
	}
	if err := h.Prods.Delete(id); err != nil {
		applog.Error(c, "admin.producto.delete.fail", err, map[string]any{"id": id})
		return c.Status(400).SendString("no se pudo eliminar")
	}
	applog.Audit(c, "admin.producto.delete", map[string]any{"id": id})
	return c.Redirect("/admin/productos")
}

// ---------- Inventory ----------

// GET /admin/inventario
func (h *AdminHandler) Inventario(c *fiber.Ctx) error {
	productos, err := h.Catalog.Inventario()
	if err != nil {
		applog.Error(c, "admin.inventario.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudo cargar el inventario"})
	}
	alertas, _ := h.Catalog.AlertasStock()
	return render(c, "admin_inventario", fiber.Map{"Productos": productos, "Alertas": alertas})
}

// GET /api/v1/admin/inventario returns rows for the inventory charts/export.
func (h *AdminHandler) InventarioJSON(c *fiber.Ctx) error {
	productos, err := h.Catalog.Inventario()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "inventario no disponible"})
	}
	return c.JSON(productos)
}

// ---------- Customers ----------

// GET /admin/clientes
func (h *AdminHandler) Clientes(c *fiber.Ctx) error {
	clientes, err := h.Users.ListClientes()
	if err != nil {
		applog.Error(c, "admin.clientes.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los clientes"})
	}
	return render(c, "admin_clientes", fiber.Map{"Clientes": clientes})
}

// POST /admin/clientes/:id/eliminar
func (h *AdminHandler) ClienteDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(400).SendString("id inválido")
	}
	if err := h.Users.DeleteClienteCascade(id); err != nil {
		applog.Error(c, "admin.clientes.delete.fail", err, map[string]any{"user_id": id})
		return c.Status(400).SendString("no se pudo eliminar el cliente")
	}
	applog.Audit(c, "admin.clientes.delete", map[string]any{"user_id": id})
	return c.Redirect("/admin/clientes")
}

// ---------- Sections ----------

// GET /admin/secciones
func (h *AdminHandler) Secciones(c *fiber.Ctx) error {
	secs, err := h.Catalog.ListSecciones()
	if err != nil {
		applog.Error(c, "admin.secciones.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "No se pudieron cargar las secciones"})
	}
	return render(c, "admin_secciones", fiber.Map{"Secciones": secs})
}

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// saveUpload stores an uploaded image under MediaDir/subdir with a
// uuid-prefixed filename and returns the media-relative path.
func (h *AdminHandler) saveUpload(c *fiber.Ctx, fh *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return "", fiber.NewError(fiber.StatusBadRequest, "formato de imagen no permitido")
	}
	if err := os.MkdirAll(filepath.Join(h.MediaDir, subdir), 0o755); err != nil {
		return "", err
	}
	name := filepath.Join(subdir, uuid.NewString()+ext)
	if err := c.SaveFile(fh, filepath.Join(h.MediaDir, name)); err != nil {
		return "", err
	}
	return filepath.ToSlash(name), nil
}
