/* Package main: knusper, a tiny postfix scripting language

Knusper is concatenative: every construct follows its operands, so there is no
precedence and no parse ambiguity.  A program is a whitespace separated word
stream; the bracket forms ( ), { }, and [ ] are delimiters only when they
stand alone as words, which is why knusper source looks spaced out.

Values are pushed onto one operand stack and consumed by the word that
follows them.  Numbers and "strings" are literals.  Bare words are variable
references, resolved against the lexical scope chain when something consumes
them as values.

Declaration and assignment:

	x let 5 =          ( declare x in the current scope, then store 5 )
	5 x let =          ( the chained spelling; = finds the target either way )
	count global 0 =   ( declare in the root scope from any nesting depth )
	x 1 +=             ( compound assignment against the current value )

Arrays evaluate their contents on a private stack and collect whatever was
pushed, in order; # indexes them (zero based):

	among let [ 1 2 3 4 ] =
	among 2 # println          ( prints 3 )

Braced blocks are deferred: they push a closure over their term sequence and
the defining scope instead of evaluating.  fn pairs a parameter tuple with a
block to make a function, and @ calls one.  Arguments are pushed in source
order, matching parameter order, and the operand stack is shared across the
call boundary, so whatever the body leaves pushed is the result:

	jort let ( a b ) { a b - } fn =
	4 3 jort @ println         ( prints 1 )

Control flow is just blocks consumed by for and if:

	among i { i println } for  ( prints each element on its own line )
	0 { "chud" println } if    ( prints nothing; only 0 is falsy )

The interpreter is a plain stack machine over the parsed terms; there is no
bytecode, no type checking, and no recovery construct: stack underflow,
undefined variables, type and arity mismatches, and out of range indexes all
abort the run with a typed error.

The command wraps the interpreter thinly: run a file, feed it stdin, or use
-i for a line edited REPL that keeps the global scope and the operand stack
alive between inputs, which suits a concatenative language well.
*/
package main
