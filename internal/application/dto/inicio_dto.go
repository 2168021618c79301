package dto

// InicioStatsResponse métricas de la página de inicio. RecaudacionMes llega
// ya formateada en moneda local (es-AR) para mostrarse tal cual.
type InicioStatsResponse struct {
	TotalClientes   int    `json:"totalClientes"`
	ClientesActivos int    `json:"clientesActivos"`
	PagosMes        int    `json:"pagosMes"`
	RecaudacionMes  string `json:"recaudacionMes"`
}
