package rewrite_test

import (
	"strings"

	"github.com/dhamidi/recast/rewrite"
)

type textFile struct {
	id   rewrite.ID
	path string
	text string
}

func newTextFile(path, text string) *textFile {
	return &textFile{id: rewrite.NewID(), path: path, text: text}
}

func (f *textFile) ID() rewrite.ID                           { return f.id }
func (f *textFile) SourcePath() string                       { return f.path }
func (f *textFile) Print(opts ...rewrite.PrintOption) string { return f.text }

func (f *textFile) withText(text string) *textFile {
	c := *f
	c.text = text
	return &c
}

type replaceRecipe struct {
	old, new string
}

func (r replaceRecipe) Name() string        { return "test.Replace" }
func (r replaceRecipe) Description() string { return "Replace text." }

func (r replaceRecipe) Validate() rewrite.Validated {
	return rewrite.Required("old", r.old)
}

func (r replaceRecipe) Visitor() rewrite.TreeVisitor {
	return rewrite.VisitorFunc(func(file rewrite.SourceFile, ctx *rewrite.Context) (rewrite.SourceFile, error) {
		f := file.(*textFile)
		if !strings.Contains(f.text, r.old) {
			return file, nil
		}
		ctx.Touch(f.id)
		return f.withText(strings.ReplaceAll(f.text, r.old, r.new)), nil
	})
}

type appendVisitor struct {
	suffix string
}

func (v appendVisitor) Key() string { return "append:" + v.suffix }

func (v appendVisitor) Visit(file rewrite.SourceFile, ctx *rewrite.Context) (rewrite.SourceFile, error) {
	f := file.(*textFile)
	return f.withText(f.text + v.suffix), nil
}

type funcRecipe struct {
	name string
	fn   rewrite.VisitorFunc
}

func (r funcRecipe) Name() string                 { return r.name }
func (r funcRecipe) Description() string          { return "" }
func (r funcRecipe) Validate() rewrite.Validated  { return rewrite.Valid() }
func (r funcRecipe) Visitor() rewrite.TreeVisitor { return r.fn }
