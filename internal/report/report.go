// Package report builds standalone, inline-styled HTML documents for the
// browser print dialog. Rendering is pure: identical input data and
// timestamp produce identical output, and the timestamp only appears in the
// footer.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/equiptrack/gateway/internal/models"
)

type field struct {
	Label string
	Value string
}

type document struct {
	Title        string
	Subtitle     string
	Fields       []field
	Instructions string
	SafetyNotes  string
	Checklist    models.Checklist
	Completed    int
	Total        int
	GeneratedAt  string
}

// WorkOrder renders a work order as a printable document.
func WorkOrder(wo models.WorkOrder, generatedAt time.Time) (string, error) {
	fields := []field{
		{Label: "Work Order", Value: wo.WOID},
		{Label: "Type", Value: string(wo.Type)},
		{Label: "Status", Value: string(wo.Status)},
		{Label: "Priority", Value: string(wo.Priority)},
		{Label: "Requested By", Value: wo.RequestedByName},
	}
	if wo.AssigneeName != nil {
		fields = append(fields, field{Label: "Assignee", Value: *wo.AssigneeName})
	}
	if wo.DepartmentName != nil {
		fields = append(fields, field{Label: "Department", Value: *wo.DepartmentName})
	}
	if wo.MachineName != nil {
		fields = append(fields, field{Label: "Machine", Value: *wo.MachineName})
	}
	if wo.DueDate != nil {
		fields = append(fields, field{Label: "Due Date", Value: wo.DueDate.Format("Jan 2, 2006 15:04")})
	}
	if wo.EstimatedDuration != nil {
		fields = append(fields, field{Label: "Est. Duration", Value: fmt.Sprintf("%d minutes", *wo.EstimatedDuration)})
	}

	instructions := ""
	if wo.Description != nil {
		instructions = *wo.Description
	}

	completed, total, _ := wo.Checklist.Progress()
	return render(document{
		Title:        wo.Title,
		Subtitle:     fmt.Sprintf("Work Order - %s", wo.WOID),
		Fields:       fields,
		Instructions: instructions,
		Checklist:    wo.Checklist,
		Completed:    completed,
		Total:        total,
		GeneratedAt:  generatedAt.Format("1/2/2006"),
	})
}

// MaintenanceTask renders a recurring maintenance task as a printable work
// order sheet with signature boxes.
func MaintenanceTask(task models.MaintenanceTask, generatedAt time.Time) (string, error) {
	fields := []field{
		{Label: "Department", Value: task.Department},
		{Label: "Machine", Value: task.Machine},
		{Label: "Frequency", Value: string(task.Frequency)},
		{Label: "Scheduled Time", Value: task.Time},
		{Label: "Priority", Value: string(task.Priority)},
		{Label: "Date", Value: "_________________"},
	}

	completed, total, _ := task.Checklist.Progress()
	return render(document{
		Title:        task.Title,
		Subtitle:     fmt.Sprintf("Maintenance Work Order - %s", task.Frequency),
		Fields:       fields,
		Instructions: task.Notes,
		SafetyNotes:  task.SafetyNotes,
		Checklist:    task.Checklist,
		Completed:    completed,
		Total:        total,
		GeneratedAt:  generatedAt.Format("1/2/2006"),
	})
}

func render(doc document) (string, error) {
	var out strings.Builder
	if err := printTemplate.Execute(&out, doc); err != nil {
		return "", fmt.Errorf("failed to render print document: %w", err)
	}
	return out.String(), nil
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
  <head>
    <title>{{.Subtitle}}</title>
    <style>
      body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.4; }
      .header { border-bottom: 2px solid #333; padding-bottom: 10px; margin-bottom: 20px; }
      .title { font-size: 24px; font-weight: bold; margin-bottom: 5px; }
      .subtitle { color: #666; font-size: 14px; }
      .section { margin-bottom: 20px; }
      .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; border-bottom: 1px solid #ddd; padding-bottom: 5px; }
      .info-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin-bottom: 15px; }
      .info-item { display: flex; }
      .info-label { font-weight: bold; min-width: 100px; }
      .checklist-item { margin: 8px 0; display: flex; align-items: center; }
      .checkbox { width: 16px; height: 16px; border: 1px solid #333; margin-right: 10px; display: inline-block; }
      .checkbox.checked::after { content: '\2713'; font-weight: bold; display: block; text-align: center; line-height: 14px; }
      .safety { background: #fff3cd; padding: 10px; border: 1px solid #ffeaa7; border-radius: 4px; }
      .notes-box { border: 1px solid #ddd; min-height: 80px; padding: 10px; }
      .signature-section { margin-top: 40px; display: grid; grid-template-columns: 1fr 1fr; gap: 40px; }
      .signature-box { border-top: 1px solid #333; padding-top: 5px; text-align: center; }
      .footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
      @media print { body { margin: 0; } }
    </style>
  </head>
  <body>
    <div class="header">
      <div class="title">{{.Title}}</div>
      <div class="subtitle">{{.Subtitle}}</div>
    </div>

    <div class="section">
      <div class="section-title">Task Information</div>
      <div class="info-grid">
        {{range .Fields}}<div class="info-item">
          <span class="info-label">{{.Label}}:</span>
          <span>{{.Value}}</span>
        </div>
        {{end}}
      </div>
    </div>

    {{if .Instructions}}
    <div class="section">
      <div class="section-title">Instructions</div>
      <p>{{.Instructions}}</p>
    </div>
    {{end}}

    {{if .SafetyNotes}}
    <div class="section">
      <div class="section-title">Safety Notes</div>
      <p class="safety">{{.SafetyNotes}}</p>
    </div>
    {{end}}

    <div class="section">
      <div class="section-title">Checklist ({{.Completed}}/{{.Total}} completed)</div>
      {{range .Checklist}}<div class="checklist-item">
        <span class="checkbox{{if .Completed}} checked{{end}}"></span>
        <span>{{.Text}}</span>
      </div>
      {{end}}{{if not .Checklist}}<p>No checklist items defined.</p>{{end}}
    </div>

    <div class="section">
      <div class="section-title">Notes/Comments</div>
      <div class="notes-box"></div>
    </div>

    <div class="signature-section">
      <div class="signature-box">
        <div>Technician Signature</div>
      </div>
      <div class="signature-box">
        <div>Supervisor Signature</div>
      </div>
    </div>

    <div class="footer">Generated on {{.GeneratedAt}} - EquipTrack</div>
  </body>
</html>
`))
