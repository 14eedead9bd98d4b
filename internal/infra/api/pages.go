package api

import (
	"fmt"
	"html/template"
	"net/http"
)

var pageFuncs = template.FuncMap{
	// iterate yields 1..n for the combination-count selector.
	"iterate": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
	"inc": func(i int) int { return i + 1 },
	// pad renders lottery balls as two digits, "07" style.
	"pad": func(n int) string { return fmt.Sprintf("%02d", n) },
}

// Server-rendered pages in the style of the callback page: one shared style
// block, small self-contained templates.

var baseStyle = `
body{font-family:system-ui,Arial,sans-serif;margin:0;background:#f4f6f4;color:#1f2d24}
.wrap{max-width:640px;margin:0 auto;padding:48px 16px;text-align:center}
.card{background:#fff;border:1px solid #ddd;border-radius:12px;padding:24px;margin-top:24px;text-align:left}
h1{color:#14622e} .accent{color:#c9a227}
.btn{display:inline-block;margin-top:16px;padding:12px 20px;border-radius:8px;background:#14622e;color:#fff;text-decoration:none;border:none;font-size:16px;cursor:pointer}
.ball{display:inline-flex;align-items:center;justify-content:center;width:40px;height:40px;border-radius:50%;background:#14622e;color:#fff;font-weight:bold;margin:4px}
.fail{color:#b00020}
label{display:block;margin-top:12px;font-weight:600}
input,select{width:100%;padding:10px;margin-top:4px;border:1px solid #bbb;border-radius:8px;box-sizing:border-box}
.small{font-size:12px;color:#666;margin-top:24px}
`

var landingPage = template.Must(template.New("landing").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Mega da Virada — Aumente Suas Chances</title>
<style>` + baseStyle + `</style>
</head>
<body>
<div class="wrap">
  <h1>MEGA DA VIRADA</h1>
  <h2>Aumente Suas Chances</h2>
  <p>Este site consiste em números que foram estudados e gerados por especialistas.</p>
  <a class="btn" href="/pricing">QUERO GERAR MEUS NÚMEROS</a>
  <p class="small">Os números gerados não são garantia de premiação. São sugestões baseadas em
  estudo estatístico dos resultados históricos. Jogue com responsabilidade.</p>
</div>
</body>
</html>`))

var pricingPage = template.Must(template.New("pricing").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Acesso aos Números da Virada</title>
<style>` + baseStyle + `</style>
</head>
<body>
<div class="wrap">
  <h1>Acesso aos Números da Virada</h1>
  <p class="accent" style="font-size:2.5em;font-weight:bold">R$ {{.Price}}</p>
  <p>Apenas uma única liberação por jogo.</p>
  <div class="card">
    <form method="post" action="/redeem">
      <label for="combinations">Quantas combinações deseja gerar?</label>
      <select id="combinations" name="numberOfCombinations">
        {{range $i := iterate .MaxCombinations}}<option value="{{$i}}">{{$i}}</option>
        {{end}}
      </select>
      <label for="code">Insira seu código de acesso</label>
      <input id="code" name="code" placeholder="Seu código aqui..." required />
      <button class="btn" type="submit">LIBERAR ACESSO</button>
    </form>
  </div>
  <p class="small">Você receberá um código de acesso após a confirmação do pagamento.</p>
</div>
</body>
</html>`))

var resultsPage = template.Must(template.New("results").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Seus Números da Sorte</title>
<style>` + baseStyle + `</style>
</head>
<body>
<div class="wrap">
  {{if .Combinations}}
  <h1>Seus Números da Sorte!</h1>
  <p>Aqui estão suas combinações geradas por especialistas. Boa sorte!</p>
  {{range $i, $combo := .Combinations}}
  <div class="card">
    <strong>Combinação #{{inc $i}}</strong><br/>
    {{range $combo}}<span class="ball">{{pad .}}</span>{{end}}
  </div>
  {{end}}
  <a class="btn" href="/">Voltar para o Início</a>
  {{else}}
  <h1 class="fail">Não foi possível carregar os números.</h1>
  <p>Por favor, tente gerar os números novamente.</p>
  <a class="btn" href="/pricing">Voltar</a>
  {{end}}
</div>
</body>
</html>`))

var errorPage = template.Must(template.New("error").Funcs(pageFuncs).Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Erro</title>
<style>` + baseStyle + `</style>
</head>
<body>
<div class="wrap">
  <h1 class="fail">Ops!</h1>
  <p>{{.Message}}</p>
  <a class="btn" href="/pricing">Tentar novamente</a>
</div>
</body>
</html>`))

func (s *Server) render(w http.ResponseWriter, t *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, data); err != nil {
		s.log.Error().Err(err).Str("template", t.Name()).Msg("render failed")
	}
}
