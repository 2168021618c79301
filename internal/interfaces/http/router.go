package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fitseo/crm-panel/internal/application/session"
	"github.com/fitseo/crm-panel/internal/application/usecase"
	"github.com/fitseo/crm-panel/internal/domain/role"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionMgr *session.Manager
	ClienteUC  *usecase.ClienteUseCase
	PagoUC     *usecase.PagoUseCase
	PlanUC     *usecase.PlanUseCase
	StaffUC    *usecase.StaffUseCase
	InicioUC   *usecase.InicioUseCase
	SoporteUC  *usecase.SoporteUseCase
}

// Router registra las rutas de la API del panel. Los cortes por rol replican
// la visibilidad del menú: Pagos y Planes para supervisores hacia arriba,
// Configuración solo para administradores.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login es público; el resto del ciclo de sesión también, porque
	// opera sobre la cookie y debe responder ANONYMOUS sin cortar con 401.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.SessionMgr)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Status)
	authGroup.Post("/renew", authHandler.Renew)

	// Rutas protegidas (requieren sesión del panel)
	protected := api.Group("/", SessionMiddleware(deps.SessionMgr))
	protected.Get("/auth/me", authHandler.Me)

	// Inicio
	inicioHandler := NewInicioHandler(deps.InicioUC)
	protected.Get("/inicio/stats", inicioHandler.Stats)

	// Clientes (cualquier rol del personal)
	clientes := protected.Group("/clientes")
	clientesHandler := NewClientesHandler(deps.ClienteUC)
	clientes.Get("/", clientesHandler.List)
	clientes.Post("/", clientesHandler.Create)
	clientes.Put("/:document", clientesHandler.Update)
	clientes.Delete("/:document", clientesHandler.Delete)

	// Pagos (supervisores hacia arriba)
	pagos := protected.Group("/pagos", RequireRole(role.CanViewPagos))
	pagosHandler := NewPagosHandler(deps.PagoUC)
	pagos.Get("/", pagosHandler.List)
	pagos.Post("/", pagosHandler.Create)
	pagos.Post("/recargos", pagosHandler.ApplyLateFees)
	pagos.Get("/cliente/:document", pagosHandler.ListByClient)
	pagos.Get("/:id/comprobante", pagosHandler.Receipt)

	// Planes (supervisores hacia arriba)
	planes := protected.Group("/planes", RequireRole(role.CanViewPlanes))
	planesHandler := NewPlanesHandler(deps.PlanUC)
	planes.Get("/", planesHandler.List)
	planes.Post("/", planesHandler.Create)
	planes.Put("/:id", planesHandler.Update)
	planes.Patch("/:id/estado", planesHandler.Toggle)

	// Configuración (solo administradores)
	configuracion := protected.Group("/configuracion", RequireRole(role.CanViewConfiguracion))
	configuracionHandler := NewConfiguracionHandler(deps.StaffUC)
	configuracion.Get("/usuarios", configuracionHandler.List)
	configuracion.Get("/roles", configuracionHandler.AllowedRoles)
	configuracion.Post("/usuarios", configuracionHandler.Create)
	configuracion.Put("/usuarios/:id", configuracionHandler.Update)
	configuracion.Patch("/usuarios/:id/estado", configuracionHandler.Toggle)
	configuracion.Delete("/usuarios/:id", configuracionHandler.Delete)

	// Soporte (con sesión; las solicitudes quedan en el almacenamiento local)
	soporte := protected.Group("/soporte")
	soporteHandler := NewSoporteHandler(deps.SoporteUC)
	soporte.Post("/", soporteHandler.Create)
	soporte.Get("/", soporteHandler.List)
}
