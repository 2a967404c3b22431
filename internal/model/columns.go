package model

// 列名常量（与源表头完全一致，区分大小写）
const (
	ColSheetName = "SheetName"

	// PQR 申请表
	ColEstado     = "Estado"
	ColCodigo     = "Codigo"
	ColPlacaMoto  = "PlacaMoto"
	ColPlacaCarro = "PlacaCarro"

	// CARTERA 账务表
	ColLedgerCodigo = "codigo"
	ColPropietari   = "propietari"
	ColSaldo        = "saldo"
	ColCuotaParqu   = "cuotaparqu"
	ColVrCuota      = "vrcuota"
	ColMoto         = "moto"
	ColJuridico     = "juridico"
	ColBicicleter   = "bicicleter"
	ColCalCartera   = "cal_cartera"

	// PARQ_ASIGNADOS 车位分配表
	ColPlacaVehiculo1 = "PlacaVehiculo1"
	ColParqueadero    = "Parqueadero"
	ColNumParq        = "Num_parq"
	ColTipoParq       = "Tipo_parq"

	// 派生列
	ColSheetCodigo      = "Sheet_Codigo"
	ColAsignarPark      = "Asignar_Park"
	ColConcatenatedInfo = "Concatenated_Info"
)

// LedgerColumns 账务表保留的列（按此顺序）
var LedgerColumns = []string{
	ColLedgerCodigo, ColPropietari, ColSaldo, ColCuotaParqu,
	ColVrCuota, ColMoto, ColJuridico, ColBicicleter,
}

// LedgerAttachColumns 申请表关联账务表时附加的列
var LedgerAttachColumns = []string{
	ColPropietari, ColSaldo, ColCuotaParqu, ColVrCuota,
	ColMoto, ColJuridico, ColBicicleter, ColCalCartera,
}

// AssignmentAttachColumns 申请表关联车位分配表时附加的列
var AssignmentAttachColumns = []string{ColNumParq, ColTipoParq}

// DefaultAcceptedStatuses 参与判定的申请状态
var DefaultAcceptedStatuses = []string{"Autorizado", "Solicitud"}

// Verdict 车位分配结论
type Verdict string

const (
	VerdictReview Verdict = "Revisar Acuerdo pago" // 欠款 > 0 且 juridico 不为 N
	VerdictDeny   Verdict = "No"
	VerdictGrant  Verdict = "Si"
)

// Verdicts 全部结论（用于统计）
var Verdicts = []Verdict{VerdictReview, VerdictDeny, VerdictGrant}

// NoPlate 无车牌时的主键占位符
const NoPlate = "NoPlaca"
