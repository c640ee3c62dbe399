package render

// previewTemplate 渲染交互式预览。页面几何固定：容器尺寸与外边距来自
// internal/layout 常量，Customization 不得改写；页内内容留白才使用
// customization.spacing.page。溢出只裁剪（overflow:hidden），由测量
// 端口上报，不在这里修复。
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  body {
    margin: 0;
    padding: 0;
    background: #e9ecef;
    font-family: '{{.Cust.FontFamily}}', sans-serif;
    color: {{.Cust.Colors.Text}};
  }
  .page {
    position: relative;
    width: {{.PageWidthPx}}px;
    height: {{.PageHeightPx}}px;
    margin: 16px auto;
    padding: {{.PageMarginPx}}px;
    box-sizing: border-box;
    background: {{.Cust.Colors.Background}};
    overflow: hidden;
  }
  .page-content {
    max-height: {{.ContentMaxPx}}px;
    overflow: hidden;
    padding: 0 {{.Cust.Spacing.Page}}px;
    box-sizing: border-box;
  }
  .page-footer {
    position: absolute;
    left: 0;
    right: 0;
    bottom: {{.PageMarginPx}}px;
    height: {{.FooterBandPx}}px;
    line-height: {{.FooterBandPx}}px;
    text-align: center;
    font-size: {{.Cust.FontSize.Small}}px;
    color: {{.Cust.Colors.TextLight}};
  }
  .overflow-marker {
    position: absolute;
    top: 4px;
    right: 4px;
    padding: 2px 6px;
    background: #c92a2a;
    color: #ffffff;
    font-size: 10px;
    font-weight: 700;
  }
  .resume-header { margin-bottom: {{.Cust.Spacing.Section}}px; text-align: {{.Header.Align}}; }
  .resume-name {
    font-size: {{.Cust.FontSize.Name}}px;
    font-weight: {{.Cust.FontWeight.Name}};
    color: {{.Theme.HeadingColor}};
    line-height: {{.Cust.LineHeight.Heading}};
  }
  .resume-headline { font-size: {{.Cust.FontSize.Body}}px; color: {{.Cust.Colors.TextLight}}; }
  .resume-contacts { font-size: {{.Cust.FontSize.Small}}px; color: {{.Cust.Colors.TextLight}}; }
  .section { margin-bottom: {{.Cust.Spacing.Section}}px; }
  .section-title {
    font-size: {{.Cust.FontSize.Heading}}px;
    font-weight: {{.Cust.FontWeight.Heading}};
    color: {{.Theme.HeadingColor}};
    line-height: {{.Cust.LineHeight.Heading}};
    text-transform: {{.UppercaseText}};
    border-bottom: {{.Cust.Borders.SectionWidth}}px {{.Theme.DividerStyle}} {{.Cust.Colors.Divider}};
    padding-bottom: 4px;
    margin-bottom: {{.Cust.Spacing.Item}}px;
  }
  .block { margin-bottom: {{.Cust.Spacing.Item}}px; }
  .block-primary { font-size: {{.Cust.FontSize.Body}}px; font-weight: 600; }
  .block-secondary { font-size: {{.Cust.FontSize.Body}}px; color: {{.Theme.AccentColor}}; }
  .block-meta { font-size: {{.Cust.FontSize.Small}}px; color: {{.Cust.Colors.TextLight}}; }
  .block-body {
    font-size: {{.Cust.FontSize.Body}}px;
    line-height: {{.Cust.LineHeight.Body}};
    margin-top: {{.Cust.Spacing.Line}}px;
  }
  .tag {
    display: inline-block;
    margin: 2px 4px 2px 0;
    padding: 1px 6px;
    font-size: {{.Cust.FontSize.Small}}px;
    color: {{.Theme.AccentColor}};
    border: 1px solid {{.Cust.Colors.Divider}};
    border-radius: 3px;
  }
</style>
</head>
<body>
{{- $root := . -}}
{{- range .Pages}}
  <div class="page" id="page-{{.Number}}">
    <div class="page-content" id="page-content-{{.Number}}">
      {{- if .ShowHeader}}
      <div class="resume-header">
        <div class="resume-name">{{$root.Header.Name}}</div>
        {{- if $root.Header.Headline}}
        <div class="resume-headline">{{$root.Header.Headline}}</div>
        {{- end}}
        {{- if $root.Header.Contacts}}
        <div class="resume-contacts">
          {{- range $i, $c := $root.Header.Contacts}}{{if $i}} · {{end}}{{$c}}{{end -}}
        </div>
        {{- end}}
      </div>
      {{- end}}
      {{- range .Sections}}
      <div class="section" data-section-id="{{.ID}}">
        {{- if .Title}}
        <div class="section-title">{{.Title}}</div>
        {{- end}}
        {{- range .Blocks}}
        <div class="block">
          {{- if .Primary}}<span class="block-primary">{{.Primary}}</span>{{end}}
          {{- if .Secondary}} <span class="block-secondary">{{.Secondary}}</span>{{end}}
          {{- if .Meta}} <span class="block-meta">{{.Meta}}</span>{{end}}
          {{- if .Body}}<div class="block-body">{{.Body}}</div>{{end}}
          {{- if .Tags}}
          <div class="block-tags">
            {{- range .Tags}}<span class="tag">{{.}}</span>{{end}}
          </div>
          {{- end}}
        </div>
        {{- end}}
      </div>
      {{- end}}
    </div>
    {{- if $root.ShowFooter}}
    <div class="page-footer">{{.Number}} / {{.Total}}</div>
    {{- end}}
    {{- if and $root.Debug .Overflow}}
    <div class="overflow-marker">OVERFLOW</div>
    {{- end}}
  </div>
{{- end}}
</body>
</html>
`

// exportTemplate 渲染打印/导出文档：单一连续文档，纸张尺寸来自
// customization.layout（英寸 × 96 DPI），分页交给打印介质的
// page-break 行为。与预览的分页器是两套策略，保持分离。
const exportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
  @page {
    size: {{.PageWidthIn}}in {{.PageHeightIn}}in;
    margin: 0;
  }
  body {
    margin: 0;
    padding: 0;
    background: {{.Cust.Colors.Background}};
    font-family: '{{.Cust.FontFamily}}', sans-serif;
    color: {{.Cust.Colors.Text}};
  }
  .sheet {
    width: {{.PageWidthPx}}px;
    min-height: {{.PageHeightPx}}px;
    padding: {{.Cust.Spacing.Page}}px;
    box-sizing: border-box;
  }
  .resume-header { margin-bottom: {{.Cust.Spacing.Section}}px; text-align: {{.Header.Align}}; }
  .resume-name {
    font-size: {{.Cust.FontSize.Name}}px;
    font-weight: {{.Cust.FontWeight.Name}};
    color: {{.Theme.HeadingColor}};
  }
  .resume-headline { font-size: {{.Cust.FontSize.Body}}px; color: {{.Cust.Colors.TextLight}}; }
  .resume-contacts { font-size: {{.Cust.FontSize.Small}}px; color: {{.Cust.Colors.TextLight}}; }
  .section {
    margin-bottom: {{.Cust.Spacing.Section}}px;
    page-break-inside: avoid;
  }
  .section-title {
    font-size: {{.Cust.FontSize.Heading}}px;
    font-weight: {{.Cust.FontWeight.Heading}};
    color: {{.Theme.HeadingColor}};
    text-transform: {{.UppercaseText}};
    border-bottom: {{.Cust.Borders.SectionWidth}}px {{.Theme.DividerStyle}} {{.Cust.Colors.Divider}};
    padding-bottom: 4px;
    margin-bottom: {{.Cust.Spacing.Item}}px;
  }
  .block { margin-bottom: {{.Cust.Spacing.Item}}px; page-break-inside: avoid; }
  .block-primary { font-size: {{.Cust.FontSize.Body}}px; font-weight: 600; }
  .block-secondary { font-size: {{.Cust.FontSize.Body}}px; color: {{.Theme.AccentColor}}; }
  .block-meta { font-size: {{.Cust.FontSize.Small}}px; color: {{.Cust.Colors.TextLight}}; }
  .block-body { font-size: {{.Cust.FontSize.Body}}px; line-height: {{.Cust.LineHeight.Body}}; }
  .tag {
    display: inline-block;
    margin: 2px 4px 2px 0;
    padding: 1px 6px;
    font-size: {{.Cust.FontSize.Small}}px;
    color: {{.Theme.AccentColor}};
    border: 1px solid {{.Cust.Colors.Divider}};
    border-radius: 3px;
  }
  @media print {
    * {
      -webkit-print-color-adjust: exact !important;
      print-color-adjust: exact !important;
    }
  }
</style>
</head>
<body>
  <div class="sheet" id="pdf-root">
    <div class="resume-header">
      <div class="resume-name">{{.Header.Name}}</div>
      {{- if .Header.Headline}}
      <div class="resume-headline">{{.Header.Headline}}</div>
      {{- end}}
      {{- if .Header.Contacts}}
      <div class="resume-contacts">
        {{- range $i, $c := .Header.Contacts}}{{if $i}} · {{end}}{{$c}}{{end -}}
      </div>
      {{- end}}
    </div>
    {{- range .Sections}}
    <div class="section" data-section-id="{{.ID}}">
      {{- if .Title}}
      <div class="section-title">{{.Title}}</div>
      {{- end}}
      {{- range .Blocks}}
      <div class="block">
        {{- if .Primary}}<span class="block-primary">{{.Primary}}</span>{{end}}
        {{- if .Secondary}} <span class="block-secondary">{{.Secondary}}</span>{{end}}
        {{- if .Meta}} <span class="block-meta">{{.Meta}}</span>{{end}}
        {{- if .Body}}<div class="block-body">{{.Body}}</div>{{end}}
        {{- if .Tags}}
        <div class="block-tags">
          {{- range .Tags}}<span class="tag">{{.}}</span>{{end}}
        </div>
        {{- end}}
      </div>
      {{- end}}
    </div>
    {{- end}}
  </div>
  <div id="pdf-render-ready"></div>
</body>
</html>
`
