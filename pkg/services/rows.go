package services

type insertedRow struct {
	ID int64 `db:"id"`
}

type countRow struct {
	Count int `db:"count"`
}
