package lint

import (
	"fmt"
	"io"
	"sort"

	"github.com/datablast-analytics/blast-redshift/pkg/task"
	"github.com/fatih/color"
)

type Printer struct {
	Out io.Writer
}

func (l *Printer) PrintIssues(analysis *AnalysisResult) {
	successPrinter := color.New(color.FgGreen)
	taskNamePrinter := color.New(color.FgYellow, color.Bold)
	issuePrinter := color.New(color.FgRed)

	faint := color.New(color.Faint).SprintFunc()

	type ruleIssue struct {
		rule  *Rule
		issue *Issue
	}

	taskIssueMap := make(map[*task.Task][]ruleIssue)
	var generalIssues []ruleIssue
	for rule, issues := range analysis.Issues {
		for _, issue := range issues {
			if issue.Task == nil {
				generalIssues = append(generalIssues, ruleIssue{rule: rule, issue: issue})
				continue
			}

			taskIssueMap[issue.Task] = append(taskIssueMap[issue.Task], ruleIssue{rule: rule, issue: issue})
		}
	}

	if len(taskIssueMap) == 0 && len(generalIssues) == 0 {
		_, _ = successPrinter.Fprintf(l.Out, "\nChecked %d tasks, no issues found\n", len(analysis.Tasks))
		return
	}

	for _, t := range analysis.Tasks {
		issues, ok := taskIssueMap[t]
		if !ok {
			continue
		}

		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].rule.Name < issues[j].rule.Name
		})

		_, _ = taskNamePrinter.Fprintf(l.Out, "\n  %s (%s)\n", t.Name, t.DefinitionFile.Path)
		for index, item := range issues {
			connector := "├──"
			if index == len(issues)-1 {
				connector = "└──"
			}

			_, _ = issuePrinter.Fprintf(l.Out, "    %s %s %s\n", connector, item.issue.Description, faint(fmt.Sprintf("(%s)", item.rule.Name)))
		}
	}

	for _, item := range generalIssues {
		_, _ = issuePrinter.Fprintf(l.Out, "\n  %s %s\n", item.issue.Description, faint(fmt.Sprintf("(%s)", item.rule.Name)))
	}
}
