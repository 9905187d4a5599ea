/*
Package langdef reads numbered rules and candidate messages from input text.

Input consists of two sections separated by a blank line:
*/
//  0: 4 1 5
//  1: 2 3 | 3 2
//  2: 4 4 | 5 5
//  3: 4 5 | 5 4
//  4: "a"
//  5: "b"
//
//  ababbb
//  bababa
/*
Each rule line is a rule id (unsigned decimal number, no sign or spaces), a colon, and a rule body.
Leading colons and spaces of the body are trimmed, the rest is stored verbatim as the rule text.
The rules section ends at the first line containing no colon.

Rule body is either a literal, i.e. a single word character (ASCII letter, digit, or underscore)
in double quotes, or one or more alternatives separated by pipe (|) symbol. An alternative is
a non-empty sequence of space-separated rule ids. Space and horizontal tabulation are insignificant.

Every line consisting of one or more word characters only is a message, lines of other forms
(including rule lines and blank lines) are skipped. Trailing carriage return is ignored.

A rule id may be defined only once. Rule ids above grammar.MaxRuleId are rejected.
References to undefined rules are not checked here, they are reported when a pattern is built.
*/
package langdef
