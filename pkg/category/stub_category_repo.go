package category

import "context"

type StubRepo struct {
	nextId int
	data   map[int]Category
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int]Category{}}
}

func (s *StubRepo) Store(ctx context.Context, userId int, category Category) (int, error) {
	s.nextId++
	category.Id = s.nextId
	s.data[category.Id] = category
	return category.Id, nil
}

func (s *StubRepo) Get(ctx context.Context, userId int, categoryId int) (Category, error) {
	category, ok := s.data[categoryId]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (s *StubRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	return categories, nil
}

func (s *StubRepo) Update(ctx context.Context, userId int, category Category) (bool, error) {
	if _, ok := s.data[category.Id]; !ok {
		return false, nil
	}
	s.data[category.Id] = category
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, userId int, categoryId int) (bool, error) {
	if _, ok := s.data[categoryId]; !ok {
		return false, nil
	}
	delete(s.data, categoryId)
	return true, nil
}

func (s *StubRepo) Cleanup() {
	s.data = map[int]Category{}
}
