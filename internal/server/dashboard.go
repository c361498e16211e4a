package server

import (
	"net/http"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/hirewatch/hirewatch/pkg/session"
	"github.com/hirewatch/hirewatch/pkg/workflow"
)

// pageLayout wraps page content in the shared HTML shell.
func pageLayout(title string, content g.Node) g.Node {
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(Lang("en"),
			Head(
				Meta(Charset("UTF-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(title)), // Using TitleEl to avoid conflict
				Script(Src("https://cdn.tailwindcss.com")),
			),
			Body(Class("bg-zinc-900 text-zinc-200 font-sans"),
				Div(Class("max-w-3xl mx-auto px-4 py-10"), content),
			),
		),
	})
}

// statCard renders one collection counter for the dashboard grid.
func statCard(label string, value int) g.Node {
	return Div(Class("bg-zinc-800/30 border border-zinc-700/50 rounded-xl p-4 text-center"),
		Div(Class("text-2xl font-extrabold tabular-nums text-cyan-400"), g.Textf("%d", value)),
		Div(Class("text-xs uppercase tracking-wider text-zinc-500 mt-1 font-medium"), g.Text(label)),
	)
}

func severityBadge(sev workflow.Severity) g.Node {
	color := "text-cyan-400"
	switch sev {
	case workflow.SeveritySuccess:
		color = "text-green-400"
	case workflow.SeverityWarning:
		color = "text-amber-400"
	case workflow.SeverityError:
		color = "text-red-400"
	}
	return Span(Class("text-xs font-semibold uppercase "+color), g.Text(string(sev)))
}

// DashboardContent renders the session summary: mode, counters, workflow
// states and the recent notification feed.
func DashboardContent(snap session.Snapshot, states map[workflow.Workflow]workflow.State, notes []workflow.Notification) g.Node {
	mode, modeColor := "live", "text-green-400"
	if snap.FallbackMode {
		mode, modeColor = "demo", "text-amber-400"
	}

	content := []g.Node{
		H1(Class("text-2xl md:text-3xl font-bold text-white mb-2"), g.Text("Session")),
		P(Class("mb-6 text-zinc-400"),
			g.Text("Mode: "),
			Span(ID("session-mode"), Class("font-semibold "+modeColor), g.Text(mode)),
		),
	}

	if snap.Error != "" {
		content = append(content,
			Div(Class("bg-red-900/20 border border-red-800/50 text-red-400 px-4 py-3 rounded-lg mb-6"),
				Strong(g.Text("Last error: ")),
				g.Text(snap.Error),
			),
		)
	}

	content = append(content,
		Div(Class("grid grid-cols-2 md:grid-cols-4 gap-4 mb-10"),
			statCard("Candidates", snap.Counts[string(session.Candidates)]),
			statCard("Roles", snap.Counts[string(session.Roles)]),
			statCard("Matches", snap.Counts[string(session.Matches)]),
			statCard("Offers", snap.Counts[string(session.Offers)]),
		),
	)

	var rows []g.Node
	for _, wf := range []workflow.Workflow{workflow.Upload, workflow.Match, workflow.Offers} {
		rows = append(rows, Tr(
			Td(Class("py-1 pr-8 text-zinc-400"), g.Text(string(wf))),
			Td(Class("py-1 font-semibold"), g.Text(string(states[wf]))),
		))
	}
	content = append(content,
		H2(Class("text-lg font-semibold text-zinc-300 mb-3"), g.Text("Workflows")),
		Table(ID("workflow-table"), Class("mb-10"), TBody(rows...)),
	)

	content = append(content, H2(Class("text-lg font-semibold text-zinc-300 mb-3"), g.Text("Recent activity")))
	if len(notes) == 0 {
		content = append(content, P(Class("text-zinc-500"), g.Text("No workflow activity yet.")))
	} else {
		var items []g.Node
		// Newest first
		for i := len(notes) - 1; i >= 0; i-- {
			n := notes[i]
			items = append(items, Li(Class("py-2 border-b border-zinc-800"),
				severityBadge(n.Severity),
				Span(Class("ml-2"), g.Text(n.Message)),
			))
		}
		content = append(content, Ul(append([]g.Node{ID("activity-feed")}, items...)...))
	}

	return g.Group(content)
}

// handleDashboard serves the HTML status page on the root path. It shows
// the same data as /api/state for people watching in a browser.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.store().Snapshot()
	states := map[workflow.Workflow]workflow.State{
		workflow.Upload: s.runner.State(workflow.Upload),
		workflow.Match:  s.runner.State(workflow.Match),
		workflow.Offers: s.runner.State(workflow.Offers),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	pageLayout("hirewatch", DashboardContent(snap, states, s.notes.Recent())).Render(w)
}
