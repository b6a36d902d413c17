package services

import (
	"fmt"
	"strings"

	"rebar-shipment-backend/config"
	shipment_services "rebar-shipment-backend/shipments/services"
	"rebar-shipment-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StartOverdueReportJob schedules the daily 08:00 summary email of overdue
// plan rows. The job re-extracts the workbook on its own; it does not share
// the HTTP layer's cache, so the morning mail always reflects the file on
// disk.
func StartOverdueReportJob(extractor *shipment_services.ExtractorService, recipients []string) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("0 8 * * *", func() {
		SendOverdueReport(extractor, recipients)
	})
	if err != nil {
		config.Logger.Error("Failed to schedule overdue report job", zap.Error(err))
		return c
	}
	c.Start()
	config.Logger.Info("Overdue report job scheduled", zap.Strings("recipients", recipients))
	return c
}

// SendOverdueReport composes and mails the overdue summary. Returns quietly
// when there is nothing overdue or nobody to mail.
func SendOverdueReport(extractor *shipment_services.ExtractorService, recipients []string) {
	if len(recipients) == 0 {
		return
	}

	plan := extractor.LoadPlan()
	var overdue []shipment_services.PlanRecord
	remaining := decimal.Zero
	for _, rec := range plan {
		if rec.OverdueDays.IsPositive() {
			overdue = append(overdue, rec)
			remaining = remaining.Add(rec.Remaining)
		}
	}
	if len(overdue) == 0 {
		config.Logger.Info("No overdue plan rows, skipping report")
		return
	}

	var b strings.Builder
	b.WriteString("<h3>钢筋发货超期订单日报</h3>")
	b.WriteString(fmt.Sprintf("<p>超期订单 <b>%d</b> 单，待发合计 <b>%s</b> 吨。</p>", len(overdue), remaining.String()))
	b.WriteString("<table border='1' cellpadding='4' cellspacing='0'>")
	b.WriteString("<tr><th>项目部</th><th>物资名称</th><th>需求量</th><th>剩余量</th><th>超期天数</th></tr>")
	for _, rec := range overdue {
		b.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			rec.Project, rec.Material, rec.Demand.String(), rec.Remaining.String(), rec.OverdueDays.String(),
		))
	}
	b.WriteString("</table>")

	subject := fmt.Sprintf("【超期预警】%d 单钢筋发货计划超期", len(overdue))
	for _, to := range recipients {
		if err := utils.SendEmail(to, b.String(), subject); err != nil {
			config.Logger.Error("Failed to send overdue report",
				zap.String("to", to),
				zap.Error(err),
			)
		}
	}
}
