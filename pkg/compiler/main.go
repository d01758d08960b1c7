// Package compiler provides the TinyScript front end: a scanner, a
// recursive-descent parser and a scope-aware type checker.
//
// Pipeline: source → Lex → Parse → Check → validated *Program
//
// The validated AST is the only artifact handed to later stages; nothing here
// executes a program.
package compiler
