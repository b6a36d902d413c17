package services

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Sheet names inside the shipment workbook.
const (
	LogisticsSheetName = "物流明细"
	AuxiliarySheetName = "辅助信息"
)

// ShipmentRecord is one row of the logistics details sheet, rebuilt from the
// workbook on every extraction pass and discarded after merging. DeliveryRaw
// keeps the cell's stored string form because the record identity is digested
// from stored values, not re-normalized ones.
type ShipmentRecord struct {
	RecordID     string          `json:"record_id"`
	Supplier     string          `json:"supplier"`      // 钢厂
	Material     string          `json:"material"`      // 物资名称
	Spec         string          `json:"spec"`          // 规格型号
	Unit         string          `json:"unit"`          // 单位
	Quantity     decimal.Decimal `json:"quantity"`      // 数量
	DeliveryRaw  string          `json:"delivery_raw"`
	DeliveryTime *time.Time      `json:"delivery_time"` // 交货时间
	Address      string          `json:"address"`       // 卸货地址
	Contact      string          `json:"contact"`       // 联系人
	Phone        string          `json:"phone"`         // 联系方式
	Project      string          `json:"project"`       // 项目部
	Status       string          `json:"status"`        // 到货状态, effective after merge
	Remark       string          `json:"remark"`        // 备注
}

// PlanRecord is one row of the main shipment plan sheet with its derived
// quantities.
type PlanRecord struct {
	Project     string          `json:"project"`      // 项目部名称
	Section     string          `json:"section"`      // 标段名称
	Material    string          `json:"material"`     // 物资名称
	OrderTime   *time.Time      `json:"order_time"`   // 下单时间
	Demand      decimal.Decimal `json:"demand"`       // 需求量
	Shipped     decimal.Decimal `json:"shipped"`      // 已发量
	Remaining   decimal.Decimal `json:"remaining"`    // 剩余量
	OverdueDays decimal.Decimal `json:"overdue_days"` // 超期天数
}

// AuxiliaryRecord is one receiver entry from the auxiliary sheet, used by the
// driver check-in flow.
type AuxiliaryRecord struct {
	Project  string `json:"project"`  // 项目部
	Section  string `json:"section"`  // 标段名称（细分）
	Receiver string `json:"receiver"` // 收货人
	Phone    string `json:"phone"`    // 收货人电话
	Address  string `json:"address"`  // 收货地址
}

// ColumnSpec declares one semantic column: the canonical header, the header
// variants older workbook revisions used, and the value synthesized when no
// variant is present.
type ColumnSpec struct {
	Canonical string
	Aliases   []string
	Default   string
}

var logisticsSchema = []ColumnSpec{
	{Canonical: "钢厂"},
	{Canonical: "物资名称", Aliases: []string{"材料名称", "品名", "名称"}},
	{Canonical: "规格型号", Aliases: []string{"型号", "规格"}},
	{Canonical: "单位", Default: "吨"},
	{Canonical: "数量", Default: "0"},
	{Canonical: "交货时间", Aliases: []string{"交货日期", "到货时间"}},
	{Canonical: "卸货地址", Aliases: []string{"收货地址"}},
	{Canonical: "联系人", Aliases: []string{"收货人"}},
	{Canonical: "联系方式", Aliases: []string{"联系电话", "收货人电话"}},
	{Canonical: "项目部", Aliases: []string{"项目部名称"}},
	{Canonical: "到货状态"},
	{Canonical: "备注"},
}

var planSchema = []ColumnSpec{
	{Canonical: "项目部名称", Aliases: []string{"项目部"}, Default: "未知项目"},
	{Canonical: "标段名称", Aliases: []string{"项目标段", "工程名称", "标段"}},
	{Canonical: "物资名称", Aliases: []string{"材料名称", "品名", "名称"}},
	{Canonical: "下单时间", Aliases: []string{"创建时间", "日期", "录入时间"}},
	{Canonical: "需求量", Aliases: []string{"需求吨位", "计划量", "数量"}, Default: "0"},
	{Canonical: "已发量", Aliases: []string{"已发吨位", "发货量"}, Default: "0"},
	{Canonical: "超期天数", Default: "0"},
}

var auxiliarySchema = []ColumnSpec{
	{Canonical: "项目部"},
	{Canonical: "标段名称（细分）", Aliases: []string{"标段名称", "标段"}},
	{Canonical: "收货人"},
	{Canonical: "收货人电话", Aliases: []string{"联系电话"}},
	{Canonical: "收货地址", Aliases: []string{"卸货地址"}},
}

// resolveColumns maps each declared column to its header index, trying the
// canonical name first and then each alias. Missing columns map to -1 and
// read as the declared default.
func resolveColumns(header []string, schema []ColumnSpec) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	resolved := make(map[string]int, len(schema))
	for _, spec := range schema {
		col := -1
		if i, ok := index[spec.Canonical]; ok {
			col = i
		} else {
			for _, alias := range spec.Aliases {
				if i, ok := index[alias]; ok {
					col = i
					break
				}
			}
		}
		resolved[spec.Canonical] = col
	}
	return resolved
}

func cellValue(row []string, idx int, def string) string {
	if idx < 0 || idx >= len(row) {
		return def
	}
	v := strings.TrimSpace(row[idx])
	if v == "" {
		return def
	}
	return v
}

func defaultsFor(schema []ColumnSpec) map[string]string {
	defs := make(map[string]string, len(schema))
	for _, spec := range schema {
		defs[spec.Canonical] = spec.Default
	}
	return defs
}

// ExtractorService turns the shipment workbook into normalized records. It is
// a pure transform over the file: no state, no caching. Callers that want the
// ten-minute cache wrap it with the redis extraction cache.
type ExtractorService struct {
	paths  []string
	logger *zap.Logger
}

// NewExtractorService builds an extractor over the candidate workbook paths.
// The first existing path wins; when none exists the working directory is
// scanned for any .xlsm/.xlsx file, matching how the operations team drops a
// renamed workbook next to the binary.
func NewExtractorService(paths []string, logger *zap.Logger) *ExtractorService {
	return &ExtractorService{paths: paths, logger: logger}
}

func (s *ExtractorService) findWorkbook() string {
	for _, p := range s.paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	entries, err := os.ReadDir(".")
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".xlsm" || ext == ".xlsx" {
			return e.Name()
		}
	}
	return ""
}

// sheetRows opens the workbook and reads one sheet. A missing file or sheet
// is the recoverable "no data yet" condition: it returns no rows and no
// error, and the caller renders an empty dashboard.
func (s *ExtractorService) sheetRows(sheet string) [][]string {
	path := s.findWorkbook()
	if path == "" {
		s.logger.Warn("shipment workbook not found", zap.Strings("paths", s.paths))
		return nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		s.logger.Warn("failed to open shipment workbook", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		s.logger.Warn("failed to read sheet", zap.String("sheet", sheet), zap.Error(err))
		return nil
	}
	return rows
}

// LoadLogistics reads the logistics details sheet into shipment records.
// Every returned record has all fields populated and a computed identity.
// Rows without a project are header padding below the data block and are
// dropped, as the source system does.
func (s *ExtractorService) LoadLogistics() []ShipmentRecord {
	rows := s.sheetRows(LogisticsSheetName)
	if len(rows) < 2 {
		return []ShipmentRecord{}
	}

	cols := resolveColumns(rows[0], logisticsSchema)
	defs := defaultsFor(logisticsSchema)

	records := make([]ShipmentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string { return cellValue(row, cols[name], defs[name]) }

		project := get("项目部")
		if project == "" {
			continue
		}

		deliveryRaw := get("交货时间")
		rec := ShipmentRecord{
			Supplier:     get("钢厂"),
			Material:     get("物资名称"),
			Spec:         get("规格型号"),
			Unit:         get("单位"),
			Quantity:     CoerceQuantity(get("数量")),
			DeliveryRaw:  deliveryRaw,
			DeliveryTime: ParseCellTime(deliveryRaw),
			Address:      get("卸货地址"),
			Contact:      get("联系人"),
			Phone:        get("联系方式"),
			Project:      project,
			Status:       get("到货状态"),
			Remark:       get("备注"),
		}
		rec.RecordID = RecordIdentity(rec.Supplier, rec.Material, rec.Spec, rec.DeliveryRaw, rec.Project)
		records = append(records, rec)
	}
	return records
}

// LoadPlan reads the main plan sheet (the workbook's first sheet) with its
// derived remaining quantity, which never goes negative even when the shipped
// column runs ahead of demand.
func (s *ExtractorService) LoadPlan() []PlanRecord {
	rows := s.sheetRows("")
	if len(rows) < 2 {
		return []PlanRecord{}
	}

	cols := resolveColumns(rows[0], planSchema)
	defs := defaultsFor(planSchema)

	records := make([]PlanRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string { return cellValue(row, cols[name], defs[name]) }

		demand := CoerceQuantity(get("需求量"))
		shipped := CoerceQuantity(get("已发量"))
		remaining := demand.Sub(shipped)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		records = append(records, PlanRecord{
			Project:     get("项目部名称"),
			Section:     get("标段名称"),
			Material:    get("物资名称"),
			OrderTime:   ParseCellTime(get("下单时间")),
			Demand:      demand,
			Shipped:     shipped,
			Remaining:   remaining,
			OverdueDays: CoerceQuantity(get("超期天数")),
		})
	}
	return records
}

// LoadAuxiliary reads the receiver directory sheet. The sheet uses merged
// cells for project/section/address, so those columns forward-fill from the
// row above; rows that still have no receiver are decoration and dropped.
func (s *ExtractorService) LoadAuxiliary() []AuxiliaryRecord {
	rows := s.sheetRows(AuxiliarySheetName)
	if len(rows) < 2 {
		return []AuxiliaryRecord{}
	}

	cols := resolveColumns(rows[0], auxiliarySchema)

	var last AuxiliaryRecord
	records := make([]AuxiliaryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(name string) string { return cellValue(row, cols[name], "") }

		rec := AuxiliaryRecord{
			Project:  get("项目部"),
			Section:  get("标段名称（细分）"),
			Receiver: get("收货人"),
			Phone:    get("收货人电话"),
			Address:  get("收货地址"),
		}
		// forward fill merged cells
		if rec.Project == "" {
			rec.Project = last.Project
		}
		if rec.Section == "" {
			rec.Section = last.Section
		}
		if rec.Address == "" {
			rec.Address = last.Address
		}
		if rec.Phone == "" {
			rec.Phone = last.Phone
		}
		last = rec

		if rec.Receiver == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}
