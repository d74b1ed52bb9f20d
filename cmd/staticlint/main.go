// Multichecker для статического анализа кодовой базы.
//
// Объединяет несколько групп анализаторов:
//
//  1. Стандартные анализаторы из golang.org/x/tools/go/analysis/passes:
//     nilness, shadow, unreachable, printf, assign, atomic, bools,
//     buildtag, copylocks, lostcancel.
//
//  2. Все анализаторы класса SA из staticcheck.io.
//
//  3. Выборочные анализаторы других классов staticcheck.io:
//     ST1000 (именование пакетов) и S1000 (упрощение условий).
//
//  4. Публичные анализаторы: bodyclose (незакрытые тела HTTP-ответов)
//     и nilerr (возврат nil при ненулевой ошибке).
//
// Использование:
//
//	go run ./cmd/staticlint ./...
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/gostaticanalysis/nilerr"
	"github.com/timakin/bodyclose/passes/bodyclose"
)

func main() {
	var analyzers []*analysis.Analyzer

	analyzers = append(analyzers,
		nilness.Analyzer,
		shadow.Analyzer,
		unreachable.Analyzer,
		printf.Analyzer,
		assign.Analyzer,
		atomic.Analyzer,
		bools.Analyzer,
		buildtag.Analyzer,
		copylock.Analyzer,
		lostcancel.Analyzer,
	)

	for _, analyzer := range staticcheck.Analyzers {
		analyzers = append(analyzers, analyzer.Analyzer)
	}

	for _, analyzer := range stylecheck.Analyzers {
		if analyzer.Analyzer.Name == "ST1000" {
			analyzers = append(analyzers, analyzer.Analyzer)
		}
	}

	for _, analyzer := range simple.Analyzers {
		if analyzer.Analyzer.Name == "S1000" {
			analyzers = append(analyzers, analyzer.Analyzer)
		}
	}

	analyzers = append(analyzers,
		bodyclose.Analyzer,
		nilerr.Analyzer,
	)

	multichecker.Main(analyzers...)
}
