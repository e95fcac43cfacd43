package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-StudioReservations/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID      int64     // ID комнаты
	CustomerID  int64     // ID клиента
	Start       time.Time // Начало окна (включительно)
	End         time.Time // Конец окна (не включительно)
	Notes       *string   // Дополнительные заметки (опционально)
	ArtistName  *string   // Имя артиста или группы (опционально)
	Instruments *string   // Инструменты (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	Segments    []domain.PriceSegment // Разбивка стоимости по тарифам
}
