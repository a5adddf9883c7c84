// Package fuzztests houses Go fuzz harnesses for the calculator pipeline
// (source -> lexer -> parser -> bignum). They guard against panics and hangs
// on arbitrary input and cross-check arithmetic against math/big.
//
// Назначение: загружать произвольные байты в FileSet и прогонять их через
// лексер, парсер и вычислитель; сверять BigInt с math/big.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/bignum, internal/eval, internal/diag, internal/testkit.
package fuzztests
