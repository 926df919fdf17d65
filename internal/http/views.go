package http

import (
	"html/template"
	"io"

	"github.com/kinohall/booking-front/internal/domain"
)

var funcs = template.FuncMap{
	"minutes": domain.PluralizeMinutes,
}

var (
	scheduleTmpl = template.Must(template.New("schedule").Funcs(funcs).Parse(schedulePage))
	hallTmpl     = template.Must(template.New("hall").Parse(hallPage))
	paymentTmpl  = template.Must(template.New("payment").Parse(paymentPage))
	ticketTmpl   = template.Must(template.New("ticket").Parse(ticketPage))
	errorTmpl    = template.Must(template.New("error").Parse(errorPage))
)

type scheduleView struct {
	Days   []domain.Day
	Movies []movieView
}

type movieView struct {
	Film  domain.Film
	Halls []hallScheduleView
}

type hallScheduleView struct {
	Name    string
	Seances []seanceView
}

type seanceView struct {
	Time      string
	Disabled  bool
	SelectURL string
}

type seatView struct {
	Classes   string
	Row, Seat int
	Clickable bool
}

type hallView struct {
	Selection     domain.SeanceSelection
	Rows          [][]seatView
	PriceStandard int
	PriceVIP      int
	HasSelection  bool
	Transform     template.CSS
	ToggleURL     string
	BookURL       string
}

type paymentView struct {
	Selection  domain.SeanceSelection
	Draft      domain.BookingDraft
	Start      string
	ConfirmURL string
}

type ticketView struct {
	Selection domain.SeanceSelection
	Seats     string
	Start     string
	QRURL     string
}

type errorView struct {
	Message string
}

func render(w io.Writer, t *template.Template, data interface{}) error {
	return t.Execute(w, data)
}

const schedulePage = `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8">
	<title>Идём в кино</title>
</head>
<body>
	<header class="page-header">
		<h1 class="page-header__title">Идём<span>в</span>кино</h1>
	</header>
	<nav class="page-nav">
		{{- range .Days}}
		<a class="page-nav__day{{if .IsToday}} page-nav__day_today{{end}}{{if .IsChosen}} page-nav__day_chosen{{end}}{{if .IsWeekend}} page-nav__day_weekend{{end}}" href="/?date={{.Timestamp}}">
			<span class="page-nav__day-week">{{.Weekday}}</span>
			<span class="page-nav__day-number">{{.MonthDay}}</span>
		</a>
		{{- end}}
	</nav>
	<main>
		{{- range .Movies}}
		<section class="movie">
			<div class="movie__info">
				<div class="movie__poster">
					<img class="movie__poster-image" alt="постер фильма" src="{{.Film.Poster}}">
				</div>
				<div class="movie__description">
					<h2 class="movie__title">{{.Film.Name}}</h2>
					<p class="movie__synopsis">{{.Film.Description}}</p>
					<p class="movie__data">
						<span class="movie__data-duration">{{.Film.Duration}} {{minutes .Film.Duration}}</span>
						<span class="movie__data-origin">{{.Film.Origin}}</span>
					</p>
				</div>
			</div>
			{{- range .Halls}}
			<div class="movie-seances__hall">
				<h3 class="movie-seances__hall-title">{{.Name}}</h3>
				<ul class="movie-seances__list">
					{{- range .Seances}}
					<li class="movie-seances__time-block">
						{{- if .Disabled}}
						<span class="movie-seances__time accepting-button-disabled">{{.Time}}</span>
						{{- else}}
						<a class="movie-seances__time" href="{{.SelectURL}}">{{.Time}}</a>
						{{- end}}
					</li>
					{{- end}}
				</ul>
			</div>
			{{- end}}
		</section>
		{{- end}}
	</main>
</body>
</html>
`

const hallPage = `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8">
	<title>Идём в кино — выбор места</title>
</head>
<body>
	<section class="buying">
		<div class="buying__info">
			<div class="buying__info-description">
				<h2 class="buying__info-title">{{.Selection.MovieName}}</h2>
				<p class="buying__info-start">Начало сеанса: {{.Selection.SeanceTime}}</p>
				<p class="buying__info-hall">{{.Selection.HallName}}</p>
			</div>
		</div>
		<div class="buying-scheme"{{if .Transform}} style="transform: {{.Transform}}"{{end}}>
			<form method="post" action="{{.ToggleURL}}">
				<div class="conf-step__wrapper">
					{{- range .Rows}}
					<div class="conf-step__row">
						{{- range .}}
						{{- if .Clickable}}
						<button type="submit" class="{{.Classes}}" name="seat" value="{{.Row}}/{{.Seat}}"></button>
						{{- else}}
						<span class="{{.Classes}}"></span>
						{{- end}}
						{{- end}}
					</div>
					{{- end}}
				</div>
			</form>
			<div class="buying-scheme__legend">
				<span class="price-standart">{{.PriceStandard}}</span>
				<span class="price-vip">{{.PriceVIP}}</span>
			</div>
		</div>
		<form method="post" action="{{.BookURL}}">
			<button class="accepting-button"{{if not .HasSelection}} disabled{{end}}>Забронировать</button>
		</form>
	</section>
</body>
</html>
`

const paymentPage = `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8">
	<title>Идём в кино — оплата</title>
</head>
<body>
	<section class="ticket">
		<div class="ticket__info-wrapper">
			<h2 class="ticket__title">{{.Selection.MovieName}}</h2>
			<p class="ticket__chairs">{{.Draft.ChosenSeats}}</p>
			<p class="ticket__hall">{{.Selection.HallName}}</p>
			<p class="ticket__start">{{.Start}}</p>
			<p class="ticket__cost">{{.Draft.TotalPrice}}</p>
		</div>
		<form method="post" action="{{.ConfirmURL}}">
			<button class="accepting-button">Получить код бронирования</button>
		</form>
	</section>
</body>
</html>
`

const ticketPage = `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8">
	<title>Идём в кино — электронный билет</title>
</head>
<body>
	<section class="ticket">
		<div class="ticket__info-wrapper">
			<h2 class="ticket__title">{{.Selection.MovieName}}</h2>
			<p class="ticket__chairs">{{.Seats}}</p>
			<p class="ticket__hall">{{.Selection.HallName}}</p>
			<p class="ticket__start">{{.Start}}</p>
		</div>
		<div class="ticket__info-qr">
			<img alt="QR-код брони" width="192" height="192" src="{{.QRURL}}">
		</div>
	</section>
</body>
</html>
`

const errorPage = `<!DOCTYPE html>
<html lang="ru">
<head>
	<meta charset="utf-8">
	<title>Идём в кино</title>
</head>
<body>
	<section class="error">
		<p class="error__message">{{.Message}}</p>
		<a class="error__back" href="/">Вернуться к расписанию</a>
	</section>
</body>
</html>
`
