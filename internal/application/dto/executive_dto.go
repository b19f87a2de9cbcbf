package dto

import "github.com/shopspring/decimal"

// ExecutiveSummary KPIs generales.
type ExecutiveSummary struct {
	TotalLeads      int             `json:"total_leads"`
	LeadsCompletos  int             `json:"leads_completos"`
	LeadsVisitaron  int             `json:"leads_visitaron"`
	LocalesVendidos int             `json:"locales_vendidos"`
	RevenueTotal    decimal.Decimal `json:"revenue_total"`
	TotalLocales    int             `json:"total_locales"`
	TasaConversion  float64         `json:"tasa_conversion"`
	PromedioVenta   decimal.Decimal `json:"promedio_venta"`
}

// ExecutiveFunnel embudo captación → venta.
type ExecutiveFunnel struct {
	LeadsCaptados       int     `json:"leads_captados"`
	LeadsCompletos      int     `json:"leads_completos"`
	LeadsVisitaron      int     `json:"leads_visitaron"`
	Ventas              int     `json:"ventas"`
	ConversionCompletos float64 `json:"conversion_completos"`
	ConversionVisitaron float64 `json:"conversion_visitaron"`
	ConversionVentas    float64 `json:"conversion_ventas"`
}

// PipelineEstado cantidad y valor por color.
type PipelineEstado struct {
	Estado     string          `json:"estado"`
	Cantidad   int             `json:"cantidad"`
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// VendedorRanking desempeño de un vendedor.
type VendedorRanking struct {
	UsuarioID            string          `json:"usuario_id"`
	Nombre               string          `json:"nombre"`
	Rol                  string          `json:"rol"`
	LeadsAsignados       int             `json:"leads_asignados"`
	LeadsVisitaron       int             `json:"leads_visitaron"`
	VentasCerradas       int             `json:"ventas_cerradas"`
	MontoTotal           decimal.Decimal `json:"monto_total"`
	ComisionesPendientes decimal.Decimal `json:"comisiones_pendientes"`
	TasaConversion       float64         `json:"tasa_conversion"`
}

// CanalMetricas leads por canal de origen.
type CanalMetricas struct {
	Canal            string  `json:"canal"`
	Leads            int     `json:"leads"`
	Visitaron        int     `json:"visitaron"`
	Compraron        int     `json:"compraron"`
	ConversionVisita float64 `json:"conversion_visita"`
	ConversionCompra float64 `json:"conversion_compra"`
}

// Morosidad pagos vencidos.
type Morosidad struct {
	PagosVencidos       int             `json:"pagos_vencidos"`
	MontoVencido        decimal.Decimal `json:"monto_vencido"`
	ClientesMorosos     int             `json:"clientes_morosos"`
	PorcentajeMorosidad float64         `json:"porcentaje_morosidad"`
}

// InicialPendiente controles con inicial por cobrar.
type InicialPendiente struct {
	Cantidad int             `json:"cantidad"`
	Monto    decimal.Decimal `json:"monto"`
}

// ProyeccionMes cobranza esperada hasta fin de mes.
type ProyeccionMes struct {
	Pagos int             `json:"pagos"`
	Monto decimal.Decimal `json:"monto"`
}

// ExecutiveFinanciero salud de la cobranza.
type ExecutiveFinanciero struct {
	Morosidad        Morosidad        `json:"morosidad"`
	InicialPendiente InicialPendiente `json:"inicial_pendiente"`
	ProyeccionMes    ProyeccionMes    `json:"proyeccion_mes"`
}

// ProyectoResumen métricas por proyecto.
type ProyectoResumen struct {
	ProyectoID          string          `json:"proyecto_id"`
	Nombre              string          `json:"nombre"`
	Leads               int             `json:"leads"`
	LocalesTotal        int             `json:"locales_total"`
	LocalesVendidos     int             `json:"locales_vendidos"`
	OcupacionPorcentaje float64         `json:"ocupacion_porcentaje"`
	Revenue             decimal.Decimal `json:"revenue"`
}
