package book

type BookReq struct {
	Title  string `json:"title" validate:"required,min=2,max=100"`
	Author string `json:"author" validate:"required,min=2,max=25"`
	Genre  string `json:"genre" validate:"omitempty,oneof=Mystery Science Fantasy Historical Romance Horror Business Travel Other"`
	Price  int64  `json:"price" validate:"gte=0"`
	Status string `json:"status" validate:"omitempty,oneof='Available' 'Borrowed' 'Out of Stock'"`
}
