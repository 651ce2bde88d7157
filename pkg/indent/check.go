package indent

import (
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// visit checks n and descends into its children with the scope n opens.
func (r *run) visit(n *mdast.Node, sc scope) {
	switch n.Kind {
	case mdast.NodeList:
		r.checkList(n, sc)
		r.visitChildren(n, sc.enterList(n))

	case mdast.NodeListItem:
		r.visitChildren(n, sc.enterItem(n))

	case mdast.NodeBlockquote:
		r.checkQuote(n, sc)
		if col := n.Indent(); col >= 0 {
			sc = sc.enterQuote(col, r.line(n.StartLine()))
		}
		r.visitChildren(n, sc)

	case mdast.NodeParagraph:
		r.checkParagraph(n, sc)

	case mdast.NodeCodeBlock:
		if n.IsFenced() {
			r.checkFence(n, sc)
		}

	default:
		r.visitChildren(n, sc)
	}
}

func (r *run) visitChildren(n *mdast.Node, sc scope) {
	for child := n.FirstChild; child != nil; child = child.Next {
		r.visit(child, sc)
	}
}

// checkList requires every item marker of a list to share the first item's
// column and, for a list nested directly in an item, that column to be the
// resolved one.
func (r *run) checkList(list *mdast.Node, sc scope) {
	first := list.FirstChild
	if first == nil || first.Indent() < 0 {
		return
	}

	base := first.Indent()
	for item := first.Next; item != nil; item = item.Next {
		if col := item.Indent(); col >= 0 && col != base {
			r.report(list.StartLine(), msgListMarkers, base, col)
			return
		}
	}

	if list.Parent == nil || list.Parent.Kind != mdast.NodeListItem {
		return
	}
	if want := r.expected(list, sc); base != want {
		r.report(list.StartLine(), msgListIndent, want, base)
	}
}

// checkQuote requires every '>' of a blockquote to share one column and the
// opening '>' to sit at the resolved column.
func (r *run) checkQuote(quote *mdast.Node, sc scope) {
	open := quote.Indent()
	if open < 0 {
		return
	}

	if quote.Block != nil && quote.Block.Blockquote != nil {
		markers := quote.Block.Blockquote.Markers
		for _, m := range markers {
			if col := m.Column - 1; col != open {
				r.report(quote.StartLine(), msgQuoteMarkers, open, col)
				return
			}
		}
	}

	if want := r.expected(quote, sc); open != want {
		r.report(quote.StartLine(), msgQuoteIndent, want, open)
	}
}

// checkFence requires the opening and closing delimiters of a fenced code
// block to sit at the resolved column. Content lines are not checked.
func (r *run) checkFence(fence *mdast.Node, sc scope) {
	open := fence.Indent()
	if open < 0 {
		return
	}

	want := r.expected(fence, sc)
	if open != want {
		r.report(fence.StartLine(), msgFenceOpen, want, open)
	}

	attrs := fence.Block.CodeBlock
	if !attrs.Closed || !attrs.Close.IsValid() {
		return
	}
	if col := attrs.Close.Column - 1; col != want {
		r.report(attrs.Close.Line, msgFenceClose, want, col)
	}
}

// checkParagraph checks the lines of a paragraph. Continuation lines must
// agree with each other first; only then is each line compared with the
// resolved column. Lines that begin with a list marker are left to the list
// checks.
func (r *run) checkParagraph(para *mdast.Node, sc scope) {
	runs := para.Children()
	if len(runs) == 0 {
		return
	}

	if !r.continuationConsistent(para, runs[1:]) {
		return
	}

	want := r.expected(para, sc)
	inList := sc.item() != nil

	for _, run := range runs {
		n := run.StartLine()
		line := r.line(n)
		if mdast.StartsWithListMarker(line) {
			continue
		}

		prefix := mdast.ScanPrefix(line)
		actual, target := prefix.Content, want

		// Check before the '>' unless that would hide a mismatch after it.
		if prefix.Quoted && ((!inList && prefix.Content == want) || prefix.Content != want) {
			actual = prefix.Indent
			if q := sc.outermostQuote(); q != nil {
				target = q.marker
			}
		}

		if actual != target {
			r.report(n, msgParagraphLine, target, actual)
		}
	}
}

// continuationConsistent reports whether the continuation lines of a
// paragraph share one content column and are either all quoted or all
// unquoted. It reports a single violation at the paragraph's first line if
// they are not.
func (r *run) continuationConsistent(para *mdast.Node, runs []*mdast.Node) bool {
	var (
		seen   bool
		column int
		quoted bool
	)

	for _, run := range runs {
		line := r.line(run.StartLine())
		if mdast.StartsWithListMarker(line) {
			continue
		}

		prefix := mdast.ScanPrefix(line)
		if !seen {
			seen, column, quoted = true, prefix.Content, prefix.Quoted
			continue
		}

		if prefix.Content != column || prefix.Quoted != quoted {
			r.report(para.StartLine(), msgContinuation, column, prefix.Content)
			return false
		}
	}

	return true
}
