package favorite

import "context"

type StubRepo struct {
	favorites []Favorite
	lastId    int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{}
}

func (r *StubRepo) Store(_ context.Context, userId int, f Favorite) (int, error) {
	r.lastId++
	f.Id = r.lastId
	f.UserId = userId
	r.favorites = append(r.favorites, f)
	return f.Id, nil
}

func (r *StubRepo) GetByType(_ context.Context, userId int, favoriteType string) ([]Favorite, error) {
	var result []Favorite
	for _, f := range r.favorites {
		if f.UserId == userId && f.Type == favoriteType {
			result = append(result, f)
		}
	}
	return result, nil
}

func (r *StubRepo) GetByTypeAndTarget(_ context.Context, userId int, favoriteType string, targetEntity int) (Favorite, error) {
	for _, f := range r.favorites {
		if f.UserId == userId && f.Type == favoriteType && f.TargetEntity == targetEntity {
			return f, nil
		}
	}
	return Favorite{}, ErrFavoriteNotFound
}

func (r *StubRepo) UpdateValue(_ context.Context, userId int, favoriteId int, value string) (bool, error) {
	for i, f := range r.favorites {
		if f.Id == favoriteId && f.UserId == userId {
			r.favorites[i].Value = value
			return true, nil
		}
	}
	return false, nil
}

func (r *StubRepo) Delete(_ context.Context, userId int, favoriteType string, targetEntity int) (bool, error) {
	for i, f := range r.favorites {
		if f.UserId == userId && f.Type == favoriteType && f.TargetEntity == targetEntity {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
