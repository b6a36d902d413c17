package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// writeTestWorkbook builds a small workbook shaped like the real one: plan
// data on the first sheet, logistics details and the receiver directory on
// their named sheets.
func writeTestWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	// Plan sheet (first sheet), using alias headers from an older revision.
	plan := [][]interface{}{
		{"项目部名称", "工程名称", "材料名称", "创建时间", "需求吨位", "已发量", "超期天数"},
		{"项目X", "一标段", "螺纹钢", "2024-01-02", "1,500", "600", "0"},
		{"项目Y", "二标段", "盘螺", "2024-01-03", "800", "900", "4"},
	}
	for i, row := range plan {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	_, err := f.NewSheet(LogisticsSheetName)
	require.NoError(t, err)
	logistics := [][]interface{}{
		{"钢厂", "材料名称", "规格型号", "数量", "交货时间", "卸货地址", "联系人", "联系方式", "项目部", "到货状态", "备注"},
		{"钢厂A", "螺纹钢", "HRB400", "1,234", "2024-01-01 00:00:00", "工地北门", "张工", "13800000000", "项目X", "", ""},
		{"钢厂B", "盘螺", "HPB300", "abc", "2024-01-05", "工地南门", "李工", "13900000000", "项目Y", "", "加急"},
		{"钢厂C", "螺纹钢", "HRB500", "50", "2024-01-06", "", "", "", "", "", ""}, // no project: dropped
	}
	for i, row := range logistics {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(LogisticsSheetName, cell, &row))
	}

	_, err = f.NewSheet(AuxiliarySheetName)
	require.NoError(t, err)
	aux := [][]interface{}{
		{"项目部", "标段名称（细分）", "收货人", "收货人电话", "收货地址"},
		{"项目X", "一标段", "张工", "13800000000", "工地北门"},
		{"", "", "王工", "13700000000", ""}, // merged cells: fills from row above
		{"", "", "", "", ""},               // no receiver: dropped
	}
	for i, row := range aux {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(AuxiliarySheetName, cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

func newTestExtractor(t *testing.T) *ExtractorService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "发货计划测试.xlsx")
	writeTestWorkbook(t, path)
	return NewExtractorService([]string{path}, zap.NewNop())
}

func TestLoadLogistics(t *testing.T) {
	records := newTestExtractor(t).LoadLogistics()
	require.Len(t, records, 2, "row without a project is dropped")

	first := records[0]
	assert.Equal(t, "钢厂A", first.Supplier)
	assert.Equal(t, "螺纹钢", first.Material, "alias 材料名称 resolves to 物资名称")
	assert.Equal(t, "HRB400", first.Spec)
	assert.Equal(t, "吨", first.Unit, "missing column synthesized with default")
	assert.Equal(t, "1234", first.Quantity.String())
	require.NotNil(t, first.DeliveryTime)
	assert.Equal(t, "项目X", first.Project)
	assert.Len(t, first.RecordID, 32)

	second := records[1]
	assert.Equal(t, "0", second.Quantity.String(), "unparseable quantity coerces to zero")
	assert.Equal(t, "加急", second.Remark)
	assert.NotEqual(t, first.RecordID, second.RecordID)
}

func TestLoadPlan(t *testing.T) {
	records := newTestExtractor(t).LoadPlan()
	require.Len(t, records, 2)

	assert.Equal(t, "项目X", records[0].Project)
	assert.Equal(t, "1500", records[0].Demand.String(), "alias 需求吨位 resolves to 需求量")
	assert.Equal(t, "900", records[0].Remaining.String())
	require.NotNil(t, records[0].OrderTime)

	assert.Equal(t, "0", records[1].Remaining.String(), "remaining never goes negative")
	assert.Equal(t, "4", records[1].OverdueDays.String())
}

func TestLoadAuxiliary(t *testing.T) {
	records := newTestExtractor(t).LoadAuxiliary()
	require.Len(t, records, 2, "row without a receiver is dropped")

	assert.Equal(t, "项目X", records[1].Project, "merged project cell forward-fills")
	assert.Equal(t, "一标段", records[1].Section)
	assert.Equal(t, "王工", records[1].Receiver)
	assert.Equal(t, "工地北门", records[1].Address, "merged address cell forward-fills")
}

func TestMissingWorkbookIsEmptyNotError(t *testing.T) {
	s := NewExtractorService([]string{filepath.Join(t.TempDir(), "nope.xlsx")}, zap.NewNop())
	assert.Empty(t, s.LoadLogistics())
	assert.Empty(t, s.LoadPlan())
	assert.Empty(t, s.LoadAuxiliary())
}
