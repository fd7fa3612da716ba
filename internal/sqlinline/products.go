package sqlinline

const QInsertProduct = `--sql cbff91f5-1970-4f94-82f3-b66ef27d8771
insert into products (id, artisan_id, title, description, price, category, images, story, cultural_context)
values ($1, $2, $3, $4, $5, $6, $7, nullif($8, ''), nullif($9, ''))
returning id, artisan_id, title, description, price, category, images,
    coalesce(story, ''), coalesce(cultural_context, ''), created_at;
`

const QSelectProductByID = `--sql 1d950ef6-a6ce-4864-8d4e-5932391eb4e8
select id, artisan_id, title, description, price, category, images,
    coalesce(story, ''), coalesce(cultural_context, ''), created_at
from products
where id = $1
limit 1;
`

const QSelectRecentProducts = `--sql 7e6b90be-5f22-4a49-935f-7bb415e2801d
select id, artisan_id, title, description, price, category, images,
    coalesce(story, ''), coalesce(cultural_context, ''), created_at
from products
order by created_at desc
limit $1;
`
