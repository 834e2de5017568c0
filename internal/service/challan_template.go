package service

import "html/template"

// 缴费单打印模板：自包含单页 HTML，浏览器直接打印
var challanTmpl = template.Must(template.New("challan").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Fee Challan - {{.StudentName}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 24px; color: #222; }
  .challan { max-width: 560px; margin: 0 auto; border: 1px solid #444; padding: 20px; }
  .header { text-align: center; border-bottom: 2px solid #4472C4; padding-bottom: 8px; }
  .header h1 { margin: 0; font-size: 20px; }
  .meta { width: 100%; margin-top: 12px; font-size: 13px; }
  .meta td { padding: 3px 0; }
  .lines { width: 100%; border-collapse: collapse; margin-top: 16px; font-size: 13px; }
  .lines th { background: #4472C4; color: #fff; padding: 6px; text-align: left; }
  .lines td { border: 1px solid #bbb; padding: 6px; }
  .total td { font-weight: bold; background: #D9E2F3; }
  .footer { margin-top: 16px; font-size: 11px; text-align: center; color: #666; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<div class="challan">
  <div class="header">
    <h1>Fee Challan</h1>
    <div>Issue Date: {{.IssueDate}}</div>
  </div>
  <table class="meta">
    <tr><td>Student:</td><td>{{.StudentName}}</td><td>Roll No:</td><td>{{.RollNumber}}</td></tr>
    <tr><td>Class:</td><td>{{.Class}} {{.Section}}</td><td>Months:</td><td>{{range $i, $m := .Months}}{{if $i}}, {{end}}{{$m}}{{end}}</td></tr>
  </table>
  <table class="lines">
    <tr><th>Description</th><th>Amount</th></tr>
    <tr><td>Tuition Fee ({{len .Months}} month(s))</td><td>{{.TuitionLine}}</td></tr>
    {{if not .ExamFee.IsZero}}<tr><td>Exam Fee</td><td>{{.ExamFee}}</td></tr>{{end}}
    {{range .OtherFees}}<tr><td>{{.Description}}</td><td>{{.Amount}}</td></tr>{{end}}
    <tr class="total"><td>Total</td><td>{{.Total}}</td></tr>
  </table>
  <div class="footer">Please pay before the 10th of the month. Keep this challan for your records.</div>
</div>
</body>
</html>
`))
