package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-system/internal/dto"
	"asset-system/internal/services"
	apperrors "asset-system/pkg/errors"
	"asset-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetAssetReport serves the asset inventory either as JSON or, with
// ?format=xlsx, as a spreadsheet download.
func (c *ReportController) GetAssetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	format := strings.ToLower(ctx.QueryParam("format"))
	switch format {
	case "", "json":
	case "xlsx":
		// Export everything, not one page.
		filter.Limit = 0
		filter.Offset = 0
	default:
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("unsupported report format: "+format), c.logger)
	}

	assets, total, err := c.reportService.GetAssetReport(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, assets)
	}
	return utils.SuccessResponse(ctx, assets, "Successfully", http.StatusOK, total)
}

var assetReportHeaders = []string{
	"Serial No", "Tag No", "Type", "Brand", "Model", "Status",
	"Assigned To", "Location", "Purchase Date", "Warranty Expiry", "Description",
}

func assetRowToSlice(item dto.PopulatedAssetDTO) []interface{} {
	dateFmt := "02.01.2006"
	var assignedTo, location, purchaseDate, warrantyExpiry string
	if item.AssignedUser != nil {
		assignedTo = item.AssignedUser.Name
	}
	if item.Location != nil {
		location = item.Location.Name
	}
	if item.PurchaseDate.Valid {
		purchaseDate = item.PurchaseDate.Time.Format(dateFmt)
	}
	if item.WarrantyExpiry.Valid {
		warrantyExpiry = item.WarrantyExpiry.Time.Format(dateFmt)
	}

	return []interface{}{
		item.SerialNo, item.TagNo, item.AssetType, item.Brand, item.Model, item.Status,
		assignedTo, location, purchaseDate, warrantyExpiry, item.Description,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.PopulatedAssetDTO) error {
	f := excelize.NewFile()
	sheet := "Assets"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &assetReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := assetRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "C", "F", 16)
	f.SetColWidth(sheet, "G", "H", 25)
	f.SetColWidth(sheet, "K", "K", 40)

	fileName := fmt.Sprintf("assets_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
