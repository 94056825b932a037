// Package report renders the typeset transaction report.
package report

import (
	"fmt"
	"strings"
	"time"

	"budgetry/internal/storage"
)

// ContentType is the MIME type the report is served with.
const ContentType = "text/latex"

func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// Generate builds the LaTeX report for one user: an analytics summary,
// a category-wise breakdown table, and the full transaction log.
func Generate(userID int64, transactions []storage.TransactionRow, totals []storage.CategoryTotal, now time.Time) string {
	var totalIncome, totalExpense int64
	for _, t := range totals {
		switch t.Type {
		case "Income":
			totalIncome += t.TotalCents
		case "Expense":
			totalExpense += t.TotalCents
		}
	}

	var breakdown []string
	for _, t := range totals {
		breakdown = append(breakdown, fmt.Sprintf(`%s & %s & %.2f \\`,
			escape(t.Type), escape(t.Category), centsToAmount(t.TotalCents)))
	}

	var logs []string
	for _, t := range transactions {
		logs = append(logs, fmt.Sprintf(`%d & %s & %.2f & %s & %s & %s \\`,
			t.ID, escape(t.Type), centsToAmount(t.AmountCents),
			escape(t.Category), escape(t.Description), escape(t.Date)))
	}

	rowSep := "\n  \\hline\n  "
	return fmt.Sprintf(`\documentclass{article}
\usepackage{geometry}
\usepackage{longtable}
\usepackage{booktabs}
\geometry{a4paper, margin=1in}
\title{Budget Tracker Transaction Report}
\author{User ID: %d}
\date{%s}
\begin{document}
\maketitle

%% Analytics Section
\section{Analytics Summary}
\begin{itemize}
  \item Total Income: \$ %.2f
  \item Total Expenses: \$ %.2f
  \item Net Balance: \$ %.2f
\end{itemize}

%% Category-wise Breakdown
\section{Category-wise Breakdown}
\begin{tabular}{|l|l|r|}
  \hline
  \textbf{Type} & \textbf{Category} & \textbf{Total Amount (\$)} \\
  \hline
  %s
  \hline
\end{tabular}

%% Transaction Logs
\section{Transaction Logs}
\begin{longtable}{|r|l|r|l|p{5cm}|l|}
  \hline
  \textbf{ID} & \textbf{Type} & \textbf{Amount (\$)} & \textbf{Category} & \textbf{Description} & \textbf{Date} \\
  \hline
  \endhead
  %s
  \hline
\end{longtable}

\end{document}
`,
		userID,
		now.Format("2006-01-02"),
		centsToAmount(totalIncome),
		centsToAmount(totalExpense),
		centsToAmount(totalIncome-totalExpense),
		strings.Join(breakdown, rowSep),
		strings.Join(logs, rowSep))
}

// escape protects the table separator in user-entered text.
func escape(s string) string {
	return strings.ReplaceAll(s, "&", `\&`)
}
