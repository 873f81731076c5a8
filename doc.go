// Package lexpr represents, reads and prints S-expressions in several Lisp
// dialect syntaxes: Scheme R6RS and R7RS, Emacs Lisp, and a Guile-flavoured
// default.
//
// Values are *Value, a tagged union over nil, the empty list, booleans,
// numbers, characters, strings, symbols, keywords, byte vectors, cons cells
// and vectors. Lists are chains of cons cells; a chain ending in the empty
// list is proper, one ending in any other value is dotted.
//
// examples:
//
//	(define (f x) (* x 2))          ; default, R6RS, R7RS
//	(a b . c) #(1 2 3) #vu8(255 0)  ; dotted list, vector, byte vector
//	#\space #\x41 "tab\there"       ; Scheme characters and strings
//	(:key [1 2] ?a nil t)           ; Emacs Lisp keyword, vector, char, nil, t
//	(#:key value)                   ; default keyword syntax
//
// Grammar shared by all dialects (dialect differences in brackets):
//
//	<datum>       :: <atom> | <list> | <vector> | <bytevector> | <abbrev> ;
//	<list>        :: "(" <datum>* ")" | "(" <datum>+ "." <datum> ")"
//	                 | [Brackets=list] "[" ... "]" ;
//	<vector>      :: "#(" <datum>* ")" | [Brackets=vector] "[" <datum>* "]" ;
//	<bytevector>  :: ( "#vu8(" | "#u8(" ) <octet>* ")" ;
//	<abbrev>      :: ( "'" | "`" | "," | ",@" | "#'" | "#`" | "#," | "#,@" ) <datum> ;
//	<atom>        :: <boolean> | <number> | <char> | <string> | <symbol> | <keyword> | "#nil" ;
//	<boolean>     :: "#t" | "#f" | "#true" | "#false" | [TSymbol=true] "t" ;
//	<number>      :: [ "#x" | "#o" | "#b" | "#d" ] <integer> | <decimal>
//	                 | "+inf.0" | "-inf.0" | "+nan.0" | [Elisp] "1.0e+INF" ... ;
//	<char>        :: "#\" ( <any char> | <char-name> | "x" <hex>+ ) | [Elisp] "?" <elisp-char> ;
//	<keyword>     :: [ColonPrefix] ":" <name> | [ColonPostfix] <name> ":"
//	                 | [Octothorpe] "#:" <name> ;
//	<symbol>      :: <token> | [Scheme] "|" <string-char>* "|" ;
//	<atmosphere>  :: <whitespace> | ";" <line> | "#|" ... "|#" | "#;" <datum> ;
//
// Parse with ParseString or a Parser, print with ToString or a Printer, and
// pick syntax with ParseOptions and PrintOptions, usually through a Dialect
// preset. From and Sexp build values from Go data and Scheme-syntax
// templates.
package lexpr
