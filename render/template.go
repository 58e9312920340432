package render

const dashboardTemplate = `<!DOCTYPE html>
<html>

<head>
  <title>{{.Title}}</title>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style type="text/css">
    body {
      font-family: -apple-system, 'Segoe UI', Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 2em;
      background: #f6f8fa;
      color: #1f2328;
    }

    h1 {
      font-size: 1.5em;
    }

    .summary span {
      margin-right: 1.5em;
      font-weight: 600;
    }

    .updated {
      color: #656d76;
      font-size: 0.9em;
    }

    table {
      border-collapse: collapse;
      width: 100%;
      background: #ffffff;
      margin-top: 1em;
    }

    th,
    td {
      text-align: left;
      padding: 0.6em 1em;
      border-bottom: 1px solid #d0d7de;
      font-size: 14px;
    }

    .dot {
      display: inline-block;
      width: 0.8em;
      height: 0.8em;
      border-radius: 50%;
      margin-right: 0.5em;
    }

    .healthy .dot { background: #1a7f37; }
    .stale .dot { background: #bf8700; }
    .failed .dot { background: #cf222e; }

    .badge {
      background: #ddf4ff;
      color: #0969da;
      border-radius: 2em;
      padding: 0.1em 0.6em;
      font-size: 0.8em;
      margin-left: 0.5em;
    }

    .age,
    .note {
      color: #656d76;
      font-size: 0.85em;
    }

    .error {
      background: #ffebe9;
      border: 1px solid #cf222e;
      padding: 1em;
      margin-top: 1em;
    }
  </style>
</head>

<body>
  <h1>{{.Title}}</h1>
{{if .Error}}
  <div class="error">Failed to load dashboard data: {{.Error}}</div>
{{else}}
  <p class="updated">Last updated {{.LastUpdated}}</p>
  <p class="summary">
    <span class="failed">{{.Summary.Failed}} failed</span>
    <span class="stale">{{.Summary.Stale}} stale</span>
    <span class="healthy">{{.Summary.Healthy}} healthy</span>
    <span>{{.Summary.Total}} total</span>
  </p>
{{if .Template}}
  <p class="note">Template <a href="{{.Template.RepoURL}}">{{.Template.LatestCommit}}</a> ({{.Template.TotalCommits}} commits)</p>
{{end}}
  <table>
    <tr>
      <th>Ingest</th>
      <th>Last release</th>
      <th>Release workflow</th>
    </tr>
{{range .Entries}}
    <tr class="{{.Status}}">
      <td>
        <span class="dot"></span><a href="{{.RepoURL}}">{{.Name}}</a>{{if .KozaV2}}<span class="badge">koza 2</span>{{end}}
{{if .Template}}        <div class="note">{{.Template}}</div>
{{end}}      </td>
      <td>
{{if .Release}}        <a href="{{.Release.URL}}">{{.Release.Tag}}</a> <span class="age">{{.ReleaseAge}}</span>
{{else}}        No releases
{{end}}      </td>
      <td>
{{if .Workflow}}        <a href="{{.Workflow.URL}}">{{.Conclusion}}</a> <span class="age">{{.WorkflowAge}}</span>
{{else}}        No workflow runs
{{end}}      </td>
    </tr>
{{end}}
  </table>
{{end}}
</body>

</html>
`
