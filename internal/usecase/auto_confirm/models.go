package auto_confirm

import "time"

// Options параметры прогона
type Options struct {
	Threshold time.Duration // Возраст PENDING, после которого бронирование подтверждается
	Workers   int           // Число параллельных обработчиков
	BatchSize int           // Максимум бронирований за прогон
}

// Result итог одного прогона
type Result struct {
	RunID     string
	Scanned   int
	Confirmed int
	Failed    int
	Elapsed   time.Duration
}
