package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/recast/java/recipes"
	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

const pom = `<project>
    <dependencies>
        <dependency>
            <artifactId>junit</artifactId>
        </dependency>
        <dependency>
            <artifactId>guava</artifactId>
        </dependency>
    </dependencies>
</project>`

const listUser = `package a;

import java.util.List;

class A {
    void fill(List<String> l) {
        l.add("x");
    }
}
`

func newTestServer(recipes ...rewrite.Recipe) *Server {
	return NewServer("test", recipes, nil)
}

func TestDiagnosticsForXML(t *testing.T) {
	t.Parallel()
	s := newTestServer(xml.NewFindTags("/project/dependencies/dependency"))

	diags := s.Diagnostics("/work/pom.xml", pom)
	require.Len(t, diags, 2)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 2, Character: 8},
		End:   protocol.Position{Line: 2, Character: 20},
	}, diags[0].Range)
	assert.Equal(t, protocol.UInteger(5), diags[1].Range.Start.Line)
	assert.Equal(t, protocol.DiagnosticSeverityInformation, *diags[0].Severity)
	assert.Equal(t, "found by "+xml.FindTagsName, diags[0].Message)
	assert.Equal(t, lsName, *diags[0].Source)
}

func TestDiagnosticsForJava(t *testing.T) {
	t.Parallel()
	s := newTestServer(recipes.NewFindMethods("java.util.List add(..)"))

	diags := s.Diagnostics("/work/A.java", listUser)
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.UInteger(6), diags[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(8), diags[0].Range.Start.Character)
}

func TestDiagnosticsForUnparsableDocument(t *testing.T) {
	t.Parallel()
	s := newTestServer(xml.NewFindTags("/project"))

	diags := s.Diagnostics("/work/pom.xml", "<project>\n<a></b>\n</project>")
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityError, *diags[0].Severity)
	assert.Contains(t, diags[0].Message, "does not match")
}

func TestDiagnosticsNothingFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(xml.NewFindTags("/project/build"))
	assert.Empty(t, s.Diagnostics("/work/pom.xml", pom))
}

func TestDocumentLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(xml.NewFindTags("/project/dependencies/dependency"))

	published := map[string]int{}
	ctx := &glsp.Context{Notify: func(method string, params any) {
		require.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
		p := params.(protocol.PublishDiagnosticsParams)
		published[p.URI] = len(p.Diagnostics)
	}}
	uri := "file:///work/pom.xml"

	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: pom},
	}))
	assert.Equal(t, 2, published[uri])

	require.NoError(t, s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "<project/>"}},
	}))
	assert.Equal(t, 0, published[uri])

	require.NoError(t, s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Equal(t, 0, published[uri])

	published[uri] = -1
	require.NoError(t, s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	assert.Equal(t, 0, published[uri])

	require.NoError(t, s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///work/notes.txt", Text: "x"},
	}))
	_, ok := published["file:///work/notes.txt"]
	assert.False(t, ok)
}

func TestURIToPath(t *testing.T) {
	t.Parallel()
	path, err := uriToPath("file:///home/me/My%20Project/pom.xml")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/My Project/pom.xml", path)

	path, err = uriToPath("/plain/path.java")
	require.NoError(t, err)
	assert.Equal(t, "/plain/path.java", path)
}
